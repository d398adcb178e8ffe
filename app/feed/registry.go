package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry is the read-only catalog of feed sources, kept in declaration order.
type Registry struct {
	sources []Source
	index   map[string]int
}

type registryFile struct {
	Sources []Source `yaml:"sources"`
}

func NewRegistry(sources []Source) (*Registry, error) {
	r := &Registry{
		sources: make([]Source, 0, len(sources)),
		index:   make(map[string]int, len(sources)),
	}

	for i, source := range sources {
		source.Key = strings.TrimSpace(source.Key)
		if err := validateSource(source); err != nil {
			return nil, fmt.Errorf("invalid source at index %d: %w", i, err)
		}

		category, _ := ParseCategory(string(source.Category))
		source.Category = category

		if _, ok := r.index[source.Key]; ok {
			return nil, fmt.Errorf("duplicate source key: %s", source.Key)
		}

		r.index[source.Key] = len(r.sources)
		r.sources = append(r.sources, source)
	}

	return r, nil
}

// DefaultRegistry returns the built-in catalog.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultSources)
	if err != nil {
		panic(fmt.Sprintf("built-in source catalog is invalid: %v", err))
	}
	return r
}

// LoadRegistry reads a YAML source catalog. A missing file yields the
// built-in catalog.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("Sources file not found, using built-in catalog", "path", path)
			return DefaultRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("no sources defined in %s", path)
	}

	r, err := NewRegistry(file.Sources)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return r, nil
}

func (r *Registry) All() []Source {
	return append([]Source(nil), r.sources...)
}

func (r *Registry) Get(key string) (Source, bool) {
	i, ok := r.index[key]
	if !ok {
		return Source{}, false
	}
	return r.sources[i], true
}

func (r *Registry) Keys() []string {
	keys := make([]string, len(r.sources))
	for i, source := range r.sources {
		keys[i] = source.Key
	}
	return keys
}

func (r *Registry) Len() int {
	return len(r.sources)
}

// ByCategory returns the sources whose category equals label, ignoring case.
func (r *Registry) ByCategory(label string) []Source {
	return r.where(func(s Source) bool {
		return strings.EqualFold(string(s.Category), strings.TrimSpace(label))
	})
}

func (r *Registry) Industry() []Source {
	return r.where(func(s Source) bool { return s.Industry })
}

func (r *Registry) Research() []Source {
	return r.where(func(s Source) bool { return s.Research })
}

func (r *Registry) where(keep func(Source) bool) []Source {
	matched := make([]Source, 0)
	for _, source := range r.sources {
		if keep(source) {
			matched = append(matched, source)
		}
	}
	return matched
}

func validateSource(source Source) error {
	requiredFields := []struct {
		name  string
		value string
	}{
		{"source key", source.Key},
		{"source URL", source.URL},
		{"source name", source.Name},
	}

	for _, field := range requiredFields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s is required", field.name)
		}
	}

	if _, ok := ParseCategory(string(source.Category)); !ok {
		return fmt.Errorf("unknown category %q for source %s", source.Category, source.Key)
	}

	return nil
}
