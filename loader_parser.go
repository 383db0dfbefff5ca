package formfield

import (
	"context"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

// NewLoader constructs an OpenAPI document loader.
func NewLoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// BuildForm loads source and converts operationID into a form model without
// applying overlays or widget resolution.
func BuildForm(ctx context.Context, source openapi.Source, operationID string, options ...openapi.LoaderOption) (model.FormModel, error) {
	doc, err := openapi.NewLoader(options...).Load(ctx, source)
	if err != nil {
		return model.FormModel{}, err
	}
	op, err := openapi.FindOperation(ctx, doc, operationID)
	if err != nil {
		return model.FormModel{}, err
	}
	return openapi.BuildForm(op), nil
}
