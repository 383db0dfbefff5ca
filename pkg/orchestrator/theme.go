package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/layout"
)

// ErrThemeNotFound is returned by ManifestSelector for unknown themes or
// variants.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// ThemeSelector picks a theme manifest and variant.
type ThemeSelector interface {
	Select(name, variant string, opts ...theme.QueryOption) (*theme.Selection, error)
}

// ManifestSelector selects from a fixed set of manifests. An empty name picks
// the first manifest by name.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

// NewManifestSelector indexes manifests by name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			continue
		}
		selector.manifests[manifest.Name] = manifest
	}
	return selector
}

// Select returns the manifest registered as name.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.manifests) == 0 {
		return nil, fmt.Errorf("%w: no manifests registered", ErrThemeNotFound)
	}
	if name == "" {
		names := make([]string, 0, len(s.manifests))
		for key := range s.manifests {
			names = append(names, key)
		}
		sort.Strings(names)
		name = names[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: variant %q of %q", ErrThemeNotFound, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the config renderers consume.
// Variant tokens, templates and asset files override the manifest's; tokens
// are also exposed as CSS custom properties ("--brand").
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   map[string]string{},
		Partials: map[string]string{},
		CSSVars:  map[string]string{},
	}
	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens, partials := layout.SelectionValues(selection)
	copyInto(cfg.Tokens, tokens)
	copyInto(cfg.Partials, partials)

	prefix := strings.TrimRight(manifest.Assets.Prefix, "/")
	files := make(map[string]string, len(manifest.Assets.Files))
	copyInto(files, manifest.Assets.Files)
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		copyInto(files, variant.Assets.Files)
		if p := strings.TrimRight(variant.Assets.Prefix, "/"); p != "" {
			prefix = p
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

func copyInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
