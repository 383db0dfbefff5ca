// Package template defines the template engine seam page renderers depend
// on. The gotemplate subpackage provides a pongo2 implementation.
package template
