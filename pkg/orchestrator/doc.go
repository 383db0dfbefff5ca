// Package orchestrator wires the loader, parser, form builder, decorators and
// renderer into a single Generate call. Every stage can be replaced through
// options; the zero configuration loads documents from disk and renders with
// the Bootstrap renderer.
package orchestrator
