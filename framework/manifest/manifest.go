package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-pore/framework/container"
)

var (
	// ErrEmptyName indicates an entry without a name.
	ErrEmptyName = errors.New("manifest: binding name is empty")

	// ErrAmbiguousEntry indicates an entry that sets both value and ref.
	ErrAmbiguousEntry = errors.New("manifest: binding sets both value and ref")

	// ErrUnsupportedFormat indicates a file extension other than .yaml, .yml or .json.
	ErrUnsupportedFormat = errors.New("manifest: unsupported file extension")
)

// Manifest is a decoded binding file.
type Manifest struct {
	// ExpandEnv replaces ${VAR} and $VAR in string values (including nested
	// ones) with environment variables.
	ExpandEnv bool    `yaml:"expand_env" json:"expand_env"`
	Bindings  []Entry `yaml:"bindings" json:"bindings"`
}

// Entry is one binding.
type Entry struct {
	Name   string   `yaml:"name" json:"name"`
	Value  any      `yaml:"value" json:"value"`
	Ref    string   `yaml:"ref" json:"ref"`
	Shared bool     `yaml:"shared" json:"shared"`
	Tags   []string `yaml:"tags" json:"tags"`
}

// EntryError reports which entry failed validation.
type EntryError struct {
	Index int
	Name  string
	Err   error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("binding #%d (%q): %v", e.Index, e.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EntryError) Unwrap() error { return e.Err }

// FromFile loads a manifest, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return Parse(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Parse decodes and validates YAML data.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseJSON decodes and validates JSON data.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every entry and returns the first problem found.
func (m *Manifest) Validate() error {
	for i, e := range m.Bindings {
		switch {
		case strings.TrimSpace(e.Name) == "":
			return &EntryError{Index: i, Name: e.Name, Err: ErrEmptyName}
		case e.Value != nil && e.Ref != "":
			return &EntryError{Index: i, Name: e.Name, Err: ErrAmbiguousEntry}
		}
	}
	return nil
}

// Apply registers every entry into r in file order.
func (m *Manifest) Apply(r *container.Registry) {
	for _, e := range m.Bindings {
		opts := container.WithOptions(container.Options{Shared: e.Shared, Tags: e.Tags})

		if e.Ref != "" {
			ref := e.Ref
			r.Bind(e.Name, func(r *container.Registry) any { return r.MustGet(ref) }, opts)
			continue
		}

		v := e.Value
		if m.ExpandEnv {
			v = expand(v)
		}
		r.Instance(e.Name, v, opts)
	}
}

// expand applies os.ExpandEnv to every string reachable from v.
func expand(v any) any {
	switch t := v.(type) {
	case string:
		return os.ExpandEnv(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = expand(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = expand(item)
		}
		return out
	default:
		return v
	}
}

// Provider registers the manifest at Path when added to a ProviderSet.
type Provider struct {
	Path string
}

// Register implements container.Provider.
func (p *Provider) Register(r *container.Registry) error {
	m, err := FromFile(p.Path)
	if err != nil {
		return err
	}
	m.Apply(r)
	return nil
}
