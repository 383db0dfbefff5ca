package render

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Renderer turns a form model into markup.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
