// Package uischema loads UI overlays for forms built from OpenAPI operations.
// An overlay is a JSON or YAML document keyed by operation id that sets the
// layout, copy, widgets, addons and ordering the schema itself cannot
// express. The Decorator applies overlays to form models as UI hints, so
// renderers stay unaware of where a hint came from.
package uischema
