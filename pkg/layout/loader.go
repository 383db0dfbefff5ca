package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Layouts map[string]Profile `json:"layouts" yaml:"layouts"`
}

// LoadFS walks fsys and registers every profile declared in JSON/YAML files
// under a top-level "layouts" key. Profiles declared twice, across files or
// against profiles already in the registry, are rejected; a profile may
// shadow a built-in mode once.
func (r *Registry) LoadFS(fsys fs.FS) error {
	if fsys == nil {
		return nil
	}

	seen := make(map[string]string)
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isProfileFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("layout: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawName, profile := range doc.Layouts {
			name := strings.TrimSpace(rawName)
			if name == "" {
				return newInvalidProfileError(rawName, path, "empty profile name")
			}
			if previous, exists := seen[name]; exists {
				return newInvalidProfileError(name, path, "duplicate profile, first declared in "+previous)
			}
			mode, err := ParseMode(string(profile.Mode))
			if err != nil {
				return newInvalidProfileError(name, path, err.Error())
			}
			profile.Mode = mode
			if err := r.Register(name, profile); err != nil {
				if errors.Is(err, ErrDuplicateProfile) {
					return newInvalidProfileError(name, path, "profile already registered")
				}
				return err
			}
			seen[name] = path
		}
		return nil
	})
}

// LoadFS builds a registry seeded with the built-in modes plus the profiles
// found in fsys.
func LoadFS(fsys fs.FS) (*Registry, error) {
	registry := NewRegistry()
	if err := registry.LoadFS(fsys); err != nil {
		return nil, err
	}
	return registry, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("layout: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("layout: parse %s: %w", source, err)
	}
	return doc, nil
}

func isProfileFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
