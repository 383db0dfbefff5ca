package gotemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-formfield/pkg/render/template"
)

// ErrNoSource is returned when neither a directory nor an fs.FS is given.
var ErrNoSource = errors.New("gotemplate: need to provide either base dir or fs.FS")

// FilterCSSVars is the filter that turns a map of CSS custom properties into
// a style declaration list.
const FilterCSSVars = "cssvars"

// Option configures the engine.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	funcs     map[string]any
	globals   map[string]any
	filters   map[string]func(any, any) (any, error)
	extra     []gotemplatepkg.Option
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the suffix appended to template names. Defaults to ".tpl".
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.extension = ext
		}
	}
}

// WithTemplateFunc registers pongo2 filters or callable globals.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		for name, fn := range funcs {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				if cfg.funcs == nil {
					cfg.funcs = make(map[string]any, len(funcs))
				}
				cfg.funcs[name] = fn
			}
		}
	}
}

// WithFilter registers a plain Go filter when the engine is built. A name
// already registered in the process keeps its first registration.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name == "" || fn == nil {
			return
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(any, any) (any, error))
		}
		cfg.filters[name] = fn
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				if cfg.globals == nil {
					cfg.globals = make(map[string]any, len(data))
				}
				cfg.globals[key] = value
			}
		}
	}
}

// WithGoTemplateOptions passes options straight to the go-template engine.
// They apply after the ones derived from this package's options.
func WithGoTemplateOptions(options ...gotemplatepkg.Option) Option {
	return func(cfg *config) {
		cfg.extra = append(cfg.extra, options...)
	}
}

// Engine is a go-template engine with the filters the form templates need.
type Engine struct {
	*gotemplatepkg.Engine
}

var (
	_ template.TemplateRenderer = (*Engine)(nil)
	_ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)
)

// New builds an engine over the configured template sources.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, ErrNoSource
	}

	funcs := map[string]any{FilterCSSVars: pongo2.FilterFunction(filterCSSVars)}
	for name, fn := range cfg.funcs {
		funcs[name] = fn
	}
	engineOptions := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
		gotemplatepkg.WithTemplateFunc(funcs),
	}
	if cfg.baseDir != "" {
		engineOptions = append(engineOptions, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		engineOptions = append(engineOptions, gotemplatepkg.WithFS(cfg.templates))
	}
	if len(cfg.globals) > 0 {
		engineOptions = append(engineOptions, gotemplatepkg.WithGlobalData(cfg.globals))
	}
	engineOptions = append(engineOptions, cfg.extra...)

	inner, err := gotemplatepkg.NewRenderer(engineOptions...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: %w", err)
	}
	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := inner.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}
	return &Engine{Engine: inner}, nil
}

// RegisterDefaultFilters makes the filters the form templates use available
// to any engine, e.g. a go-template engine built by the caller. Filters
// already registered are left alone.
func RegisterDefaultFilters(engine template.TemplateRenderer) error {
	if pongo2.FilterExists(FilterCSSVars) {
		return nil
	}
	return engine.RegisterFilter(FilterCSSVars, CSSVars)
}

// CSSVars renders a map of CSS custom properties as "--a: x; --b: y;",
// keys sorted.
func CSSVars(input any, _ any) (any, error) {
	vars := make(map[string]string)
	switch v := input.(type) {
	case map[string]string:
		vars = v
	case map[string]any:
		for key, value := range v {
			vars[key] = fmt.Sprint(value)
		}
	}
	if len(vars) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for idx, key := range keys {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String(), nil
}

func filterCSSVars(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, _ := CSSVars(in.Interface(), nil)
	return pongo2.AsValue(out), nil
}
