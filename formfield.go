// Package formfield renders Bootstrap 3 forms from OpenAPI operations. The
// root package re-exports the common entry points; the pkg/ tree holds the
// field builder, layouts, widgets, renderers and orchestration.
package formfield

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
)

// RenderOptions describes per-request overrides that renderers use to prefill
// values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// ErrorMapping is the result of MapErrorPayload.
type ErrorMapping = render.ErrorMapping

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads source, builds the form for operationID and renders it
// with the named renderer ("" selects Bootstrap).
func GenerateHTML(ctx context.Context, source openapi.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// GenerateHTMLFromDocument renders a form from an already loaded document.
func GenerateHTMLFromDocument(ctx context.Context, doc openapi.Document, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:    &doc,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// WithThemeSelector passes a theme selector through to the orchestrator.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemes registers manifests and picks the default theme and variant.
func WithThemes(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) orchestrator.Option {
	selector := orchestrator.NewManifestSelector(manifests...)
	return func(o *orchestrator.Orchestrator) {
		orchestrator.WithThemeSelector(selector)(o)
		orchestrator.WithDefaultTheme(defaultTheme, defaultVariant)(o)
	}
}
