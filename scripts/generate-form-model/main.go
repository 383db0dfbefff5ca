// Command generate-form-model writes the decorated form model of an operation
// as JSON, for use as a golden file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing/fstest"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/uischema"
)

func main() {
	var (
		schemaPath   = flag.String("schema", "pkg/openapi/testdata/petstore.yaml", "OpenAPI schema path")
		uiSchemaPath = flag.String("uischema", "", "UI schema file")
		operationID  = flag.String("operation", "createPet", "operation ID to snapshot")
		outputPath   = flag.String("output", "pkg/openapi/testdata/createPet.form.json", "output path for the serialized form model")
	)
	flag.Parse()

	var options []orchestrator.Option
	if *uiSchemaPath != "" {
		decorator, err := loadUIDecorator(*uiSchemaPath)
		if err != nil {
			fail("load UI schema", err)
		}
		options = append(options, orchestrator.WithUIDecorators(decorator))
	}

	form, err := orchestrator.New(options...).Form(context.Background(), orchestrator.Request{
		Source:      openapi.SourceFromFile(*schemaPath),
		OperationID: *operationID,
	})
	if err != nil {
		fail("build form model", err)
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		fail("marshal form model", err)
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fail("create output dir", err)
	}
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fail("write snapshot", err)
	}
	fmt.Printf("wrote form model snapshot to %s\n", *outputPath)
}

func loadUIDecorator(path string) (model.Decorator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ui schema: %w", err)
	}
	store, err := uischema.LoadFS(fstest.MapFS{filepath.Base(path): {Data: data}})
	if err != nil {
		return nil, err
	}
	return uischema.NewDecorator(store), nil
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "failed to %s: %v\n", step, err)
	os.Exit(1)
}
