package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrNoOperations is returned for documents without any operation.
	ErrNoOperations = errors.New("openapi parser: no operations extracted")
	// ErrOperationNotFound is returned by Operation for unknown ids.
	ErrOperationNotFound = errors.New("openapi parser: operation not found")
)

// Request body media types, in order of preference.
var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// ParserOption configures Parse.
type ParserOption func(*parserConfig)

type parserConfig struct {
	validate     bool
	externalRefs bool
}

// WithValidation validates the document before extracting operations.
func WithValidation(enabled bool) ParserOption {
	return func(cfg *parserConfig) {
		cfg.validate = enabled
	}
}

// WithExternalRefs allows $ref pointers to other documents.
func WithExternalRefs(enabled bool) ParserOption {
	return func(cfg *parserConfig) {
		cfg.externalRefs = enabled
	}
}

// Operations parses doc and returns its operations keyed by operationId.
// Operations without an id are keyed "<method>:<path>" in lower case method.
func Operations(ctx context.Context, doc Document, options ...ParserOption) (map[string]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := parserConfig{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: cfg.externalRefs}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]Operation)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				collect(operations, strings.ToUpper(method), path, operation)
			}
		}
	}
	if len(operations) == 0 {
		return nil, ErrNoOperations
	}
	return operations, nil
}

// FindOperation parses doc and returns the operation with the given id.
func FindOperation(ctx context.Context, doc Document, id string, options ...ParserOption) (Operation, error) {
	operations, err := Operations(ctx, doc, options...)
	if err != nil {
		return Operation{}, err
	}
	op, ok := operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

// OperationIDs returns the sorted operation ids of operations.
func OperationIDs(operations map[string]Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func collect(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := strings.TrimSpace(operation.OperationID)
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Extensions:  operation.Extensions,
		RequestBody: requestSchema(operation.RequestBody),
	}
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if mt := content.Get(mediaType); mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
