package formfield

import (
	"io/fs"

	"github.com/goliatone/go-formfield/pkg/renderers/bootstrap"
)

// EmbeddedTemplates exposes the built-in Bootstrap page templates so callers
// can copy or extend them.
func EmbeddedTemplates() fs.FS {
	return bootstrap.TemplatesFS()
}
