package openapi

import (
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
)

// MetaOrder is the x-formgen key ordering properties. Properties without it
// follow the ordered ones, by name.
const MetaOrder = "order"

// BuildForm converts an operation into a form model. Request body properties
// become fields; objects nest, arrays keep their item schema. x-formgen
// extensions on the operation and on every schema become metadata and UI
// hints.
func BuildForm(op Operation) model.FormModel {
	form := model.FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      op.Method,
		Summary:     op.Summary,
		Description: op.Description,
	}
	form.Metadata, form.UIHints = model.ParseUIExtensions(op.Extensions)
	if op.RequestBody != nil {
		form.Fields = fieldsOf(op.RequestBody)
	}
	return form
}

func fieldsOf(schema *openapi3.Schema) []model.Field {
	properties, required := members(schema)
	if len(properties) == 0 {
		return nil
	}
	fields := make([]model.Field, 0, len(properties))
	for name, ref := range properties {
		_, isRequired := required[name]
		fields = append(fields, buildField(name, ref, isRequired))
	}
	sort.SliceStable(fields, func(i, j int) bool {
		oi, okI := order(fields[i])
		oj, okJ := order(fields[j])
		switch {
		case okI && okJ && oi != oj:
			return oi < oj
		case okI != okJ:
			return okI
		default:
			return fields[i].Name < fields[j].Name
		}
	})
	return fields
}

// members collects properties and required names, folding allOf parts in.
func members(schema *openapi3.Schema) (openapi3.Schemas, map[string]struct{}) {
	properties := make(openapi3.Schemas)
	required := make(map[string]struct{})
	var walk func(s *openapi3.Schema)
	walk = func(s *openapi3.Schema) {
		if s == nil {
			return
		}
		for _, part := range s.AllOf {
			if part != nil {
				walk(part.Value)
			}
		}
		for name, ref := range s.Properties {
			properties[name] = ref
		}
		for _, name := range s.Required {
			required[name] = struct{}{}
		}
	}
	walk(schema)
	return properties, required
}

func buildField(name string, ref *openapi3.SchemaRef, required bool) model.Field {
	field := model.Field{Name: name, Required: required, Type: model.FieldTypeString}
	if ref == nil || ref.Value == nil {
		return field
	}
	schema := ref.Value
	field.Type = fieldType(schema)
	field.Format = schema.Format
	field.Label = schema.Title
	field.Description = schema.Description
	field.Default = schema.Default
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}
	field.Validations = validations(schema)
	field.Metadata, field.UIHints = model.ParseUIExtensions(extensions(schema))

	switch field.Type {
	case model.FieldTypeObject:
		field.Nested = fieldsOf(schema)
	case model.FieldTypeArray:
		if schema.Items != nil {
			item := buildField("", schema.Items, false)
			field.Items = &item
		}
	}
	return field
}

func fieldType(schema *openapi3.Schema) model.FieldType {
	if schema.Type != nil {
		for _, kind := range schema.Type.Slice() {
			if kind != openapi3.TypeNull {
				return model.FieldType(kind)
			}
		}
	}
	switch {
	case len(schema.Properties) > 0 || len(schema.AllOf) > 0:
		return model.FieldTypeObject
	case schema.Items != nil:
		return model.FieldTypeArray
	default:
		return model.FieldTypeString
	}
}

func validations(schema *openapi3.Schema) []model.ValidationRule {
	var rules []model.ValidationRule
	add := func(kind, value string) {
		rules = append(rules, model.ValidationRule{Kind: kind, Params: map[string]string{"value": value}})
	}
	if schema.Min != nil {
		add(model.ValidationRuleMin, strconv.FormatFloat(*schema.Min, 'f', -1, 64))
	}
	if schema.Max != nil {
		add(model.ValidationRuleMax, strconv.FormatFloat(*schema.Max, 'f', -1, 64))
	}
	if schema.MinLength > 0 {
		add(model.ValidationRuleMinLength, strconv.FormatUint(schema.MinLength, 10))
	}
	if schema.MaxLength != nil {
		add(model.ValidationRuleMaxLength, strconv.FormatUint(*schema.MaxLength, 10))
	}
	if schema.Pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	return rules
}

// extensions merges allOf part extensions under the schema's own.
func extensions(schema *openapi3.Schema) map[string]any {
	if len(schema.AllOf) == 0 {
		return schema.Extensions
	}
	merged := make(map[string]any)
	for _, part := range schema.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		for key, value := range extensions(part.Value) {
			merged[key] = value
		}
	}
	for key, value := range schema.Extensions {
		merged[key] = value
	}
	return merged
}

func order(field model.Field) (int, bool) {
	raw, ok := field.Metadata[MetaOrder]
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}
