package layout

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Profile is a named layout: a mode plus the overrides applied to it.
type Profile struct {
	Mode      Mode `json:"mode" yaml:"mode"`
	Overrides `yaml:",inline"`
}

// Registry stores layout profiles by name. The three modes are registered
// under their own names by NewRegistry; each may be shadowed once.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	custom   map[string]struct{}
}

// NewRegistry creates a registry seeded with the built-in modes.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile), custom: make(map[string]struct{})}
	for _, mode := range Modes() {
		r.profiles[string(mode)] = Profile{Mode: mode}
	}
	return r
}

// Register adds a profile. A name already registered is rejected with
// ErrDuplicateProfile, except a built-in mode that has not been shadowed yet.
func (r *Registry) Register(name string, profile Profile) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("layout: profile name is required")
	}
	if profile.Mode == "" {
		profile.Mode = ModeDefault
	}
	if !profile.Mode.Valid() {
		return newModeError(string(profile.Mode))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.custom[name]; taken {
		return newDuplicateProfileError(name)
	}
	r.profiles[name] = profile
	r.custom[name] = struct{}{}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, profile Profile) {
	if err := r.Register(name, profile); err != nil {
		panic(err)
	}
}

// Get retrieves a profile by name.
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[strings.TrimSpace(name)]
	if !ok {
		return Profile{}, newProfileNotFoundError(name)
	}
	return profile, nil
}

// Resolve looks up a profile and resolves it into a preset, layering extra
// overrides on top of the profile's own.
func (r *Registry) Resolve(name string, extra ...Overrides) (Preset, error) {
	profile, err := r.Get(name)
	if err != nil {
		return Preset{}, err
	}
	overrides := profile.Overrides
	for _, layer := range extra {
		overrides = overrides.Merge(layer)
	}
	return Resolve(profile.Mode, overrides)
}

// List returns a sorted list of profile names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a profile is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.profiles[strings.TrimSpace(name)]
	return ok
}
