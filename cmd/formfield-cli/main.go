package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formfield/pkg/layout"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/orchestrator"
	"github.com/goliatone/go-formfield/pkg/render"
	"github.com/goliatone/go-formfield/pkg/renderers/bootstrap"
)

type options struct {
	source      string
	operation   string
	layout      string
	renderer    string
	output      string
	uischema    string
	layouts     string
	values      string
	errors      string
	method      string
	hidden      hiddenFlag
	list        bool
	interactive bool
	verbose     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.source, "source", "", "OpenAPI document path or URL")
	flag.StringVar(&opts.operation, "operation", "", "operation ID to render")
	flag.StringVar(&opts.layout, "layout", "", "layout name (default, horizontal, inline or a custom profile)")
	flag.StringVar(&opts.renderer, "renderer", bootstrap.Name, "renderer to use")
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.StringVar(&opts.uischema, "uischema", "", "directory holding UI schema overlays")
	flag.StringVar(&opts.layouts, "layouts", "", "directory holding layout profiles")
	flag.StringVar(&opts.values, "values", "", "JSON file with values to prefill")
	flag.StringVar(&opts.errors, "errors", "", "JSON file with a server error payload")
	flag.StringVar(&opts.method, "method", "", "override the form method")
	flag.Var(&opts.hidden, "hidden", "extra hidden input as name=value (repeatable)")
	flag.BoolVar(&opts.list, "list", false, "list operation IDs and exit")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for missing operation and layout")
	flag.BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "formfield: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	logger := zap.NewNop()
	if opts.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = dev
		defer func() { _ = logger.Sync() }()
	}

	src, err := parseSource(opts.source)
	if err != nil {
		return err
	}

	layouts := layout.NewRegistry()
	if opts.layouts != "" {
		if layouts, err = layout.LoadFS(os.DirFS(opts.layouts)); err != nil {
			return fmt.Errorf("load layouts: %w", err)
		}
	}

	renderer, err := bootstrap.New(
		bootstrap.WithLayoutRegistry(layouts),
		bootstrap.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orchOptions := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(openapi.NewLoader(openapi.WithHTTPFallback(30 * time.Second))),
	}
	if opts.uischema != "" {
		orchOptions = append(orchOptions, orchestrator.WithUISchemaFS(os.DirFS(opts.uischema)))
	}
	gen := orchestrator.New(orchOptions...)

	req := orchestrator.Request{Source: src, OperationID: opts.operation, Renderer: opts.renderer}

	if opts.list || (opts.interactive && opts.operation == "") {
		ids, err := gen.Operations(ctx, req)
		if err != nil {
			return err
		}
		if opts.list {
			_, err := fmt.Fprintln(stdout, strings.Join(ids, "\n"))
			return err
		}
		if req.OperationID, err = chooseOne("Operation", ids, ""); err != nil {
			return err
		}
	}
	if req.OperationID == "" {
		return errors.New("operation is required (use -operation, -list or -interactive)")
	}

	layoutName := opts.layout
	if opts.interactive && layoutName == "" {
		if layoutName, err = chooseOne("Layout", layouts.List(), string(layout.ModeDefault)); err != nil {
			return err
		}
	}
	req.RenderOptions = render.RenderOptions{
		Layout:       layoutName,
		Method:       opts.method,
		HiddenInputs: render.MergeHiddenInputs(nil, opts.hidden...),
	}

	if opts.values != "" || opts.errors != "" {
		form, err := gen.Form(ctx, req)
		if err != nil {
			return err
		}
		if err := applyPayloads(&req.RenderOptions, form, opts); err != nil {
			return err
		}
	}

	out, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate form: %w", err)
	}

	if opts.output == "" {
		_, err := fmt.Fprintln(stdout, string(out))
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("form written", zap.String("path", opts.output), zap.Int("bytes", len(out)))
	return nil
}

func applyPayloads(target *render.RenderOptions, form model.FormModel, opts options) error {
	if opts.values != "" {
		var values map[string]any
		if err := readJSON(opts.values, &values); err != nil {
			return fmt.Errorf("read values: %w", err)
		}
		target.Values = values
	}
	if opts.errors != "" {
		var payload map[string][]string
		if err := readJSON(opts.errors, &payload); err != nil {
			return fmt.Errorf("read errors: %w", err)
		}
		mapping := render.MapErrorPayload(form, payload)
		target.Errors = mapping.Fields
		target.FormErrors = render.MergeFormErrors(target.FormErrors, mapping.Form...)
	}
	return nil
}

type hiddenFlag []render.HiddenInput

func (h *hiddenFlag) String() string {
	parts := make([]string, len(*h))
	for idx, input := range *h {
		parts[idx] = input.Name + "=" + input.Value
	}
	return strings.Join(parts, ",")
}

func (h *hiddenFlag) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("hidden input %q: expected name=value", raw)
	}
	*h = append(*h, render.Hidden(name, value))
	return nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func parseSource(raw string) (openapi.Source, error) {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil, errors.New("source is required")
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path), nil
}
