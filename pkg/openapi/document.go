package openapi

import (
	"errors"

	"github.com/getkin/kin-openapi/openapi3"
)

// Document is a raw OpenAPI payload plus its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw. Both arguments are required.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier, or "".
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is one HTTP operation of a document with its request body schema
// already resolved.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Extensions are the operation's vendor extensions (x-formgen...).
	Extensions map[string]any
	// RequestBody is the preferred request body schema, nil when the
	// operation takes no body.
	RequestBody *openapi3.Schema
}
