package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

// Extension keys that carry metadata rather than UI hints.
var metadataKeys = map[string]struct{}{
	openapi.MetaOrder: {},
}

// Keys whose object values are flattened into dotted hint keys.
var nestedKeys = map[string]struct{}{
	"addon":          {},
	model.HintLayout: {},
}

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for unsupported x-formgen extensions.\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if code := run(context.Background(), flag.Args(), os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, paths []string, stderr io.Writer) int {
	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}
	if len(violations) == 0 {
		return 0
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file != violations[j].file {
			return violations[i].file < violations[j].file
		}
		if violations[i].location != violations[j].location {
			return violations[i].location < violations[j].location
		}
		return violations[i].message < violations[j].message
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(ctx context.Context, path string) ([]violation, error) {
	doc, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(path))
	if err != nil {
		return nil, err
	}
	operations, err := openapi.Operations(ctx, doc, openapi.WithValidation(false))
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	var result []violation
	for _, id := range openapi.OperationIDs(operations) {
		op := operations[id]
		base := []string{"operation", id}
		result = append(result, lintExtensions(path, base, op.Extensions)...)
		result = append(result, lintSchema(path, appendPath(base, "requestBody"), op.RequestBody, map[*openapi3.Schema]bool{})...)
	}
	return result, nil
}

func lintSchema(file string, path []string, schema *openapi3.Schema, seen map[*openapi3.Schema]bool) []violation {
	if schema == nil || seen[schema] {
		return nil
	}
	seen[schema] = true

	result := lintExtensions(file, path, schema.Extensions)
	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if ref := schema.Properties[key]; ref != nil {
			result = append(result, lintSchema(file, appendPath(path, "properties."+key), ref.Value, seen)...)
		}
	}
	for idx, part := range schema.AllOf {
		if part != nil {
			result = append(result, lintSchema(file, appendPath(path, fmt.Sprintf("allOf.%d", idx)), part.Value, seen)...)
		}
	}
	if schema.Items != nil {
		result = append(result, lintSchema(file, appendPath(path, "items"), schema.Items.Value, seen)...)
	}
	return result
}

func lintExtensions(file string, path []string, extensions map[string]any) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []violation
	for _, key := range keys {
		value := extensions[key]
		switch {
		case key == model.ExtensionNamespace:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, violation{file, formatLocation(path), fmt.Sprintf("%s must be an object, found %T", model.ExtensionNamespace, value)})
				continue
			}
			nestedNames := make([]string, 0, len(nested))
			for name := range nested {
				nestedNames = append(nestedNames, name)
			}
			sort.Strings(nestedNames)
			for _, name := range nestedNames {
				result = append(result, validateHint(file, appendPath(path, name), name, nested[name])...)
			}
		case strings.HasPrefix(key, model.ExtensionNamespace+"-"):
			name := strings.TrimPrefix(key, model.ExtensionNamespace+"-")
			result = append(result, validateHint(file, path, name, value)...)
		}
	}
	return result
}

func validateHint(file string, path []string, key string, value any) []violation {
	location := formatLocation(path)
	if key == "" {
		return []violation{{file, location, "extension key is empty"}}
	}
	if nested, ok := value.(map[string]any); ok {
		if _, flattens := nestedKeys[key]; flattens {
			var result []violation
			for sub, subValue := range nested {
				result = append(result, validateHint(file, path, key+"."+sub, subValue)...)
			}
			return result
		}
	}
	if _, ok := metadataKeys[key]; ok {
		return nil
	}
	if !model.IsAllowedUIHintKey(key) {
		return []violation{{file, location, fmt.Sprintf("unsupported UI extension key %q (supported: %s)", key, strings.Join(model.AllowedUIHintKeys(), ", "))}}
	}
	if _, ok := model.CanonicalizeExtensionValue(value); !ok {
		return []violation{{file, location, fmt.Sprintf("value for %q must be a string, number, boolean or object (got %T)", key, value)}}
	}
	return nil
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
