package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	activefield "github.com/goliatone/go-formfield/pkg/bootstrap"
	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/render"
	rendertemplate "github.com/goliatone/go-formfield/pkg/render/template"
	"github.com/goliatone/go-formfield/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formfield/pkg/tag"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

// Name is the registry name of the renderer.
const Name = "bootstrap"

// DefaultSubmitLabel is used when the form has no submitLabel hint.
const DefaultSubmitLabel = "Submit"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	layouts          *layout.Registry
	widgets          *widgets.Registry
	logger           *zap.Logger
	stylesheets      []string
	defaultLayout    string
	noErrorSummary   bool
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/form.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template engine, bypassing the bundled one.
// A go-template engine works as is; the filters form.tpl uses are registered
// on it.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLayoutRegistry resolves layout names against registry instead of the
// built-in profiles.
func WithLayoutRegistry(registry *layout.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.layouts = registry
		}
	}
}

// WithWidgetRegistry replaces the widget registry.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithLogger sets the logger handed to every form.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStylesheet links an extra stylesheet before the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithDefaultLayout sets the layout used when neither the render options nor
// the form name one.
func WithDefaultLayout(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.defaultLayout = name
		}
	}
}

// WithoutErrorSummary drops the error summary block.
func WithoutErrorSummary() Option {
	return func(cfg *config) {
		cfg.noErrorSummary = true
	}
}

// Renderer renders a whole form model as Bootstrap 3 markup.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	layouts        *layout.Registry
	widgets        *widgets.Registry
	logger         *zap.Logger
	stylesheets    []string
	defaultLayout  string
	noErrorSummary bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:    TemplatesFS(),
		defaultLayout: string(layout.ModeDefault),
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.layouts == nil {
		cfg.layouts = layout.NewRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		built, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("bootstrap renderer: configure template renderer: %w", err)
		}
		engine = built
	} else if err := gotemplate.RegisterDefaultFilters(engine); err != nil {
		return nil, fmt.Errorf("bootstrap renderer: register template filters: %w", err)
	}

	return &Renderer{
		templates:      engine,
		layouts:        cfg.layouts,
		widgets:        cfg.widgets,
		logger:         cfg.logger,
		stylesheets:    cfg.stylesheets,
		defaultLayout:  cfg.defaultLayout,
		noErrorSummary: cfg.noErrorSummary,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render lays out every field of form, resolving widgets and applying UI
// hints, and wraps them in the page template.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("bootstrap renderer: template renderer is nil")
	}

	fields := model.Flatten(form.Fields)
	resolved := make([]string, len(fields))
	multipart := false
	for idx, field := range fields {
		widget, _ := r.widgets.Resolve(field)
		resolved[idx] = widget
		if widget == widgets.WidgetFile {
			multipart = true
		}
	}

	layoutName := r.layoutName(form, options)
	formOptions := []activefield.Option{
		activefield.WithLogger(r.logger),
		activefield.WithProfile(r.layouts, layoutName),
		activefield.WithOverrides(layout.FromRendererConfig(options.Theme).Merge(hintOverrides(form))),
		activefield.WithModel(form),
		activefield.WithValues(options.Values),
		activefield.WithErrors(options.Errors),
		activefield.WithFormErrors(options.FormErrors...),
	}
	if method := strings.TrimSpace(options.Method); method != "" {
		formOptions = append(formOptions, activefield.WithMethod(method))
	}
	for _, input := range render.SortedHiddenInputs(options.HiddenInputs) {
		formOptions = append(formOptions, activefield.WithHiddenInput(input.Name, input.Value))
	}
	if multipart {
		formOptions = append(formOptions, activefield.WithMultipart())
	}
	fieldForm, err := activefield.New(formOptions...)
	if err != nil {
		return nil, fmt.Errorf("bootstrap renderer: %w", err)
	}

	markup := make([]string, 0, len(fields))
	for idx, field := range fields {
		r.logger.Debug(LogMsgWidget,
			zap.String(LogFieldAttribute, field.Name),
			zap.String(LogFieldWidget, resolved[idx]),
		)
		markup = append(markup, renderField(fieldForm, field, resolved[idx]))
	}

	data := map[string]any{
		"title":       strings.TrimSpace(form.Summary),
		"begin":       fieldForm.Begin(),
		"end":         fieldForm.End(),
		"fields":      markup,
		"submit":      submitButton(fieldForm, form),
		"stylesheets": r.stylesheetsFor(options),
	}
	if !r.noErrorSummary {
		data["summary"] = fieldForm.ErrorSummary(nil)
	}
	if options.Theme != nil && len(options.Theme.CSSVars) > 0 {
		data["cssVars"] = options.Theme.CSSVars
	}

	out, err := r.templates.RenderTemplate(FormTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("bootstrap renderer: render template: %w", err)
	}

	r.logger.Debug(LogMsgFormRendered,
		zap.String(LogFieldOperation, form.OperationID),
		zap.String(LogFieldLayout, string(fieldForm.Mode())),
		zap.Int(LogFieldFields, len(fields)),
	)
	return []byte(out), nil
}

// layoutName picks the layout: render options, form hint, theme variant,
// then the renderer default.
func (r *Renderer) layoutName(form model.FormModel, options render.RenderOptions) string {
	if name := strings.TrimSpace(options.Layout); name != "" {
		return name
	}
	if name := form.Hint(model.HintLayout); name != "" {
		return name
	}
	if mode, ok := layout.ModeFromRendererConfig(options.Theme); ok {
		return string(mode)
	}
	return r.defaultLayout
}

func (r *Renderer) stylesheetsFor(options render.RenderOptions) []string {
	out := append([]string(nil), r.stylesheets...)
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := strings.TrimSpace(options.Theme.AssetURL(StylesheetAsset)); href != "" {
			out = append(out, href)
		}
	}
	return out
}

func hintOverrides(form model.FormModel) layout.Overrides {
	return layout.Overrides{
		Horizontal: layout.HorizontalClasses{
			Label:   form.Hint(model.HintLayoutLabel),
			Wrapper: form.Hint(model.HintLayoutWrapper),
			Offset:  form.Hint(model.HintLayoutOffset),
		},
	}
}

// submitButton renders the submit control inside a form group. The
// horizontal layout aligns it with the inputs through the offset class.
func submitButton(form *activefield.Form, spec model.FormModel) string {
	label := spec.Hint(model.HintSubmitLabel)
	if label == "" {
		label = DefaultSubmitLabel
	}
	button := tag.Tag("button", tag.Encode(label), tag.Attrs{"type": "submit", "class": "btn btn-primary"})

	preset := form.Preset()
	switch preset.Mode {
	case layout.ModeInline:
		return button
	case layout.ModeHorizontal:
		wrapper := tag.Tag("div", button, tag.Attrs{"class": tag.NormalizeClass(preset.Horizontal.Offset + " " + preset.Horizontal.Wrapper)})
		return tag.Tag("div", wrapper, tag.Attrs{"class": "form-group"})
	default:
		return tag.Tag("div", button, tag.Attrs{"class": "form-group"})
	}
}
