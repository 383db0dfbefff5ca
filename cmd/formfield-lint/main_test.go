package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_CleanDocument(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join("..", "..", "pkg", "openapi", "testdata", "petstore.yaml")
	if code := run(context.Background(), []string{path}, &stderr); code != 0 {
		t.Fatalf("expected clean lint, got %d:\n%s", code, stderr.String())
	}
}

func TestRun_ReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := `openapi: 3.0.3
info: {title: x, version: "1"}
paths:
  /things:
    post:
      operationId: createThing
      x-formgen: {colour: red}
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
                  x-formgen-addon: {side: left}
                  x-formgen-label: [a, b]
      responses:
        "200": {description: ok}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stderr bytes.Buffer
	if code := run(context.Background(), []string{path}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	out := stderr.String()
	for _, want := range []string{
		`operation > createThing > colour -> unsupported UI extension key "colour"`,
		`unsupported UI extension key "addon.side"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"label"`) {
		t.Fatalf("array values are valid hints:\n%s", out)
	}
}

func TestRun_MissingFile(t *testing.T) {
	var stderr bytes.Buffer
	if code := run(context.Background(), []string{"missing.yaml"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
