// Package profile loads named watermark presets from a YAML file.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klytics/stampkit/internal/config"
)

// Profile is one named watermark preset. Unset fields fall back to the
// config/flag values.
type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Text     string   `yaml:"text,omitempty" json:"text,omitempty"`
	Position string   `yaml:"position,omitempty" json:"position,omitempty"`
	Opacity  *float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	FontSize *int     `yaml:"font_size,omitempty" json:"fontSize,omitempty"`
}

// File is the full profiles document.
type File struct {
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// DefaultPath returns the standard profiles file location.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "profiles.yaml")
}

// Load reads and parses a profiles YAML file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profiles file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read profiles file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses profiles from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid profiles YAML: %w", err)
	}

	if err := validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

func validate(f *File) error {
	if len(f.Profiles) == 0 {
		return fmt.Errorf("profiles file defines no profiles")
	}

	seen := make(map[string]bool)
	for i, p := range f.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile %d is missing a 'name' field", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile name %q — each profile must have a unique name", p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}

// Get returns the named profile.
func (f *File) Get(name string) (*Profile, bool) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], true
		}
	}
	return nil, false
}
