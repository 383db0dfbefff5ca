package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data: bound values, server errors and
// layout selection. The form model itself is never mutated by a renderer.
type RenderOptions struct {
	// Method overrides the method declared by the form model. Verbs other
	// than GET and POST render as POST plus a hidden _method input.
	Method string
	// Values pre-populates controls, keyed by dotted field path
	// ("owner.email") or nested maps.
	Values map[string]any
	// Errors holds validation messages keyed by dotted field path. Use
	// MapErrorPayload to normalise payloads keyed by JSON pointers.
	Errors map[string][]string
	// FormErrors are messages not tied to a field; they only show in the
	// error summary.
	FormErrors []string
	// HiddenInputs are emitted after the opening form tag in name order,
	// e.g. a CSRF token. A "_method" entry is ignored; use Method.
	HiddenInputs map[string]string
	// Layout names a layout mode or registered profile. Empty falls back to
	// the form's "layout" hint, then the renderer default.
	Layout string
	// Theme carries tokens and partials that override layout classes and
	// templates.
	Theme *theme.RendererConfig
}
