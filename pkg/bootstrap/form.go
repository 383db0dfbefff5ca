package bootstrap

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/tag"
)

// DefaultErrorSummaryHeader opens the error summary block.
const DefaultErrorSummaryHeader = "<p>Please fix the following errors:</p>"

// MethodParam is the hidden input carrying the real verb of non GET/POST forms.
const MethodParam = "_method"

// Option configures a Form.
type Option func(*config)

type config struct {
	mode      layout.Mode
	overrides layout.Overrides
	preset    *layout.Preset
	registry  *layout.Registry
	profile   string

	name       string
	id         string
	action     string
	method     string
	fields     []model.Field
	values     map[string]any
	errors     map[string][]string
	formErrors []string
	hidden     [][2]string
	options    tag.Attrs
	multipart  bool
	labeler    func(string) string
	logger     *zap.Logger
}

// WithLayout selects the layout mode. Ignored when WithPreset or WithProfile
// is also supplied.
func WithLayout(mode layout.Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// WithOverrides layers caller configuration over the layout preset. Repeated
// calls merge, later values winning.
func WithOverrides(overrides layout.Overrides) Option {
	return func(cfg *config) {
		cfg.overrides = cfg.overrides.Merge(overrides)
	}
}

// WithPreset uses an already resolved preset as is.
func WithPreset(preset layout.Preset) Option {
	return func(cfg *config) {
		clone := preset.Clone()
		cfg.preset = &clone
	}
}

// WithProfile resolves the named profile from registry.
func WithProfile(registry *layout.Registry, name string) Option {
	return func(cfg *config) {
		cfg.registry = registry
		cfg.profile = strings.TrimSpace(name)
	}
}

// WithName sets the model name used to build input names (`Name[attr]`).
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = strings.TrimSpace(name)
	}
}

// WithID sets the id of the <form> element.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = strings.TrimSpace(id)
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
	}
}

// WithMethod sets the HTTP method. Verbs other than GET and POST are sent as
// POST with a hidden _method input.
func WithMethod(method string) Option {
	return func(cfg *config) {
		cfg.method = strings.TrimSpace(method)
	}
}

// WithFields registers the field descriptions Field(attr) binds to.
func WithFields(fields []model.Field) Option {
	return func(cfg *config) {
		cfg.fields = append([]model.Field(nil), fields...)
	}
}

// WithModel binds a form model: its fields, endpoint and method.
func WithModel(form model.FormModel) Option {
	return func(cfg *config) {
		cfg.fields = append([]model.Field(nil), form.Fields...)
		if cfg.name == "" {
			cfg.name = strings.TrimSpace(form.Name)
		}
		if cfg.id == "" {
			cfg.id = strings.TrimSpace(form.OperationID)
		}
		if cfg.action == "" {
			cfg.action = strings.TrimSpace(form.Endpoint)
		}
		if cfg.method == "" {
			cfg.method = strings.TrimSpace(form.Method)
		}
	}
}

// WithValues pre-populates controls, keyed by dotted attribute path.
func WithValues(values map[string]any) Option {
	return func(cfg *config) {
		cfg.values = values
	}
}

// WithErrors supplies validation errors keyed by dotted attribute path.
func WithErrors(errors map[string][]string) Option {
	return func(cfg *config) {
		cfg.errors = errors
	}
}

// WithFormErrors supplies errors not tied to a field. They appear in the
// error summary only.
func WithFormErrors(messages ...string) Option {
	return func(cfg *config) {
		cfg.formErrors = append(cfg.formErrors, messages...)
	}
}

// WithHiddenInput adds a hidden input after the opening form tag. Inputs
// keep the order they were added in.
func WithHiddenInput(name, value string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" && name != MethodParam {
			cfg.hidden = append(cfg.hidden, [2]string{name, value})
		}
	}
}

// WithOptions sets extra attributes on the <form> element.
func WithOptions(options tag.Attrs) Option {
	return func(cfg *config) {
		cfg.options = tag.Merge(cfg.options, options)
	}
}

// WithMultipart marks the form as carrying file uploads.
func WithMultipart() Option {
	return func(cfg *config) {
		cfg.multipart = true
	}
}

// WithLabeler overrides label generation for fields without a label.
func WithLabeler(labeler func(string) string) Option {
	return func(cfg *config) {
		cfg.labeler = labeler
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Form holds the resolved layout and the data fields bind to.
type Form struct {
	cfg    config
	preset layout.Preset
	logger *zap.Logger
}

// New resolves the layout and returns a form ready to hand out fields.
func New(options ...Option) (*Form, error) {
	cfg := config{
		mode:    layout.ModeDefault,
		labeler: model.DefaultLabeler,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	preset, err := resolvePreset(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: resolve layout: %w", err)
	}

	form := &Form{cfg: cfg, preset: preset, logger: cfg.logger}
	form.logger.Debug(LogMsgFormCreated,
		zap.String(LogFieldLayout, string(preset.Mode)),
		zap.String(LogFieldForm, cfg.name),
	)
	return form, nil
}

func resolvePreset(cfg config) (layout.Preset, error) {
	switch {
	case cfg.preset != nil:
		return cfg.preset.Clone(), nil
	case cfg.registry != nil && cfg.profile != "":
		return cfg.registry.Resolve(cfg.profile, cfg.overrides)
	default:
		return layout.Resolve(cfg.mode, cfg.overrides)
	}
}

// Preset returns a copy of the resolved preset.
func (f *Form) Preset() layout.Preset {
	return f.preset.Clone()
}

// Mode reports the layout mode.
func (f *Form) Mode() layout.Mode {
	return f.preset.Mode
}

// Name reports the model name used in input names.
func (f *Form) Name() string {
	return f.cfg.name
}

// Field starts a field for attribute, a dotted path. The field description is
// looked up among the form's fields; unknown attributes render with a
// generated label and no constraints.
func (f *Form) Field(attribute string) *Field {
	spec, ok := model.FindField(f.cfg.fields, attribute)
	if !ok {
		spec = model.Field{}
	}
	spec.Name = strings.TrimSpace(attribute)
	return newField(f, spec)
}

// FieldFor starts a field from an explicit description. spec.Name must hold
// the full dotted attribute path.
func (f *Form) FieldFor(spec model.Field) *Field {
	spec.Name = strings.TrimSpace(spec.Name)
	return newField(f, spec)
}

// Begin renders the opening <form> tag plus the method override input when
// the method is neither GET nor POST, followed by any extra hidden inputs.
func (f *Form) Begin() string {
	opts := f.cfg.options.Clone()
	if f.cfg.id != "" && !opts.Has("id") {
		opts["id"] = f.cfg.id
	}
	tag.AddClass(opts, f.preset.FormClass)
	if f.cfg.multipart && !opts.Has("enctype") {
		opts["enctype"] = "multipart/form-data"
	}

	method := f.cfg.method
	if method == "" {
		method = "post"
	}
	var hidden []string
	if !strings.EqualFold(method, "get") && !strings.EqualFold(method, "post") {
		hidden = append(hidden, hiddenInput(MethodParam, strings.ToUpper(method)))
		method = "post"
	}
	for _, pair := range f.cfg.hidden {
		hidden = append(hidden, hiddenInput(pair[0], pair[1]))
	}
	opts["action"] = f.cfg.action
	opts["method"] = strings.ToLower(method)

	out := tag.Begin("form", opts)
	for _, input := range hidden {
		out += "\n" + input
	}
	return out
}

func hiddenInput(name, value string) string {
	return tag.Tag("input", "", tag.Attrs{"type": "hidden", "name": name, "value": value})
}

// End renders the closing </form> tag.
func (f *Form) End() string {
	return tag.End("form")
}

// ErrorSummary renders every form-level error followed by the first error of
// each field. With no errors the block is still rendered but hidden.
func (f *Form) ErrorSummary(options tag.Attrs) string {
	opts := tag.AddClass(options.Clone(), "error-summary alert alert-danger")
	header := opts.Pop("header", DefaultErrorSummaryHeader)
	footer := opts.Pop("footer", "")

	lines := f.summaryLines()
	var content string
	if len(lines) == 0 {
		content = "<ul></ul>"
		if style := strings.TrimRight(strings.TrimSpace(opts["style"]), ";"); style != "" {
			opts["style"] = style + "; display:none"
		} else {
			opts["style"] = "display:none"
		}
	} else {
		encoded := make([]string, len(lines))
		for idx, line := range lines {
			encoded[idx] = tag.Encode(line)
		}
		content = "<ul><li>" + strings.Join(encoded, "</li>\n<li>") + "</li></ul>"
	}
	return tag.Tag("div", header+content+footer, opts)
}

func (f *Form) summaryLines() []string {
	var lines []string
	seen := make(map[string]struct{})
	add := func(message string) {
		message = strings.TrimSpace(message)
		if message == "" {
			return
		}
		if _, ok := seen[message]; ok {
			return
		}
		seen[message] = struct{}{}
		lines = append(lines, message)
	}

	for _, message := range f.cfg.formErrors {
		add(message)
	}

	visited := make(map[string]struct{})
	for _, field := range model.Flatten(f.cfg.fields) {
		visited[field.Name] = struct{}{}
		if message, ok := f.firstError(field.Name); ok {
			add(message)
		}
	}
	remaining := make([]string, 0, len(f.cfg.errors))
	for path := range f.cfg.errors {
		if _, ok := visited[path]; !ok {
			remaining = append(remaining, path)
		}
	}
	sort.Strings(remaining)
	for _, path := range remaining {
		if message, ok := f.firstError(path); ok {
			add(message)
		}
	}
	return lines
}

func (f *Form) firstError(path string) (string, bool) {
	for _, message := range f.cfg.errors[path] {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

func (f *Form) value(path string, fallback any) (any, bool) {
	if value, ok := model.LookupValue(f.cfg.values, path); ok {
		return value, true
	}
	if fallback != nil {
		return fallback, true
	}
	return nil, false
}
