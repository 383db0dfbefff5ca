package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/bootstrap"
	"github.com/goliatone/go-formfield/pkg/uischema"
	"github.com/goliatone/go-formfield/pkg/widgets"
)

const defaultRendererName = bootstrap.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader *openapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParserOptions forwards options to the OpenAPI parser.
func WithParserOptions(options ...openapi.ParserOption) Option {
	return func(o *Orchestrator) {
		o.parserOptions = append(o.parserOptions, options...)
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithWidgetRegistry replaces the widget registry used to annotate fields and
// by the default renderer.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = registry
	}
}

// WithSchemaTransformer registers a Transformer that runs after the form is
// built and before UI schema decorators.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run against the form before
// rendering, after the UI schema overlay.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema overlays.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
	}
}

// WithThemeSelector resolves themes for requests. Requests without a theme
// name fall back to the defaults set by WithDefaultTheme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output.
type Orchestrator struct {
	loader          *openapi.Loader
	parserOptions   []openapi.ParserOption
	registry        *render.Registry
	widgets         *widgets.Registry
	defaultRenderer string
	transformer     Transformer
	decorators      []model.Decorator
	uiSchemaFS      fs.FS
	uiDecorator     model.Decorator
	themes          ThemeSelector
	themeName       string
	themeVariant    string
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source openapi.Source

	// Document bypasses the loader.
	Document *openapi.Document

	// OperationID selects which operation to render into a form.
	OperationID string

	// Renderer names the renderer to use, falling back to the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured and RenderOptions.Theme is nil.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values, errors, layout and method
	// overrides.
	RenderOptions render.RenderOptions
}

// Generate runs loader, parser, form builder, decorators and renderer, and
// returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.themeConfig(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug(LogMsgRendered,
		zap.String(LogFieldOperation, form.OperationID),
		zap.String(LogFieldRenderer, renderer.Name()),
		zap.Int(LogFieldBytes, len(output)),
	)
	return output, nil
}

// Form runs the pipeline up to, but excluding, rendering and returns the
// decorated form model.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if o.initialiseErr != nil {
		return model.FormModel{}, o.initialiseErr
	}
	if req.OperationID == "" {
		return model.FormModel{}, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	op, err := openapi.FindOperation(ctx, doc, req.OperationID, o.parserOptions...)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}

	form := openapi.BuildForm(op)
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	if err := o.decorate(&form); err != nil {
		return model.FormModel{}, err
	}
	o.logger.Debug(LogMsgFormBuilt,
		zap.String(LogFieldOperation, form.OperationID),
		zap.Int(LogFieldFields, len(form.Fields)),
	)
	return form, nil
}

// Operations lists the operation ids of the requested document.
func (o *Orchestrator) Operations(ctx context.Context, req Request) ([]string, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := openapi.Operations(ctx, doc, o.parserOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return openapi.OperationIDs(operations), nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (openapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return openapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return openapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	o.logger.Debug(LogMsgDocumentLoaded, zap.String(LogFieldSource, doc.Location()))
	return doc, nil
}

func (o *Orchestrator) decorate(form *model.FormModel) error {
	chain := model.Decorators{o.uiDecorator}
	chain = append(chain, o.decorators...)
	chain = append(chain, o.widgets)
	if err := chain.Decorate(form); err != nil {
		return fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return nil
}

func (o *Orchestrator) themeConfig(req Request) (*theme.RendererConfig, error) {
	if o.themes == nil {
		return nil, nil
	}
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name, variant = o.themeName, o.themeVariant
	}
	selection, err := o.themes.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	o.logger.Debug(LogMsgThemeSelected,
		zap.String(LogFieldTheme, selection.Theme),
		zap.String(LogFieldVariant, selection.Variant),
	)
	return RendererConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = openapi.NewLoader()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := bootstrap.New(
			bootstrap.WithWidgetRegistry(o.widgets),
			bootstrap.WithLogger(o.logger),
		)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}

	if o.uiSchemaFS != nil {
		store, err := uischema.LoadFS(o.uiSchemaFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
			return
		}
		if !store.Empty() {
			o.uiDecorator = uischema.NewDecorator(store)
		}
	}
}
