// Package terms provides taxonomy sources for composite controls: a static
// in-memory table and a loader for YAML term files.
package terms

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/goliatone/go-formtree/pkg/element"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTaxonomy is returned for taxonomies the source does not hold.
var ErrUnknownTaxonomy = errors.New("terms: unknown taxonomy")

// Static is a fixed taxonomy table. It is safe for concurrent reads and
// writes.
type Static struct {
	mu    sync.RWMutex
	terms map[string][]element.Choice
}

// NewStatic builds a source from a taxonomy table. The table is copied.
func NewStatic(table map[string][]element.Choice) *Static {
	s := &Static{terms: make(map[string][]element.Choice, len(table))}
	for taxonomy, choices := range table {
		s.terms[taxonomy] = append([]element.Choice(nil), choices...)
	}
	return s
}

// Set replaces the terms of one taxonomy.
func (s *Static) Set(taxonomy string, choices []element.Choice) {
	s.mu.Lock()
	s.terms[taxonomy] = append([]element.Choice(nil), choices...)
	s.mu.Unlock()
}

// Terms implements element.TermSource.
func (s *Static) Terms(taxonomy string) ([]element.Choice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	choices, ok := s.terms[taxonomy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaxonomy, taxonomy)
	}
	return append([]element.Choice(nil), choices...), nil
}

// Taxonomies lists the known taxonomy names, sorted.
func (s *Static) Taxonomies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.terms))
	for name := range s.terms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// term is the YAML shape of one term. Children are flattened into the
// parent's group.
type term struct {
	Value    any    `yaml:"value"`
	Label    string `yaml:"label"`
	Children []term `yaml:"children"`
}

// Parse decodes a YAML document mapping taxonomy names to term lists.
func Parse(data []byte) (*Static, error) {
	var doc map[string][]term
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("terms: parse: %w", err)
	}
	table := make(map[string][]element.Choice, len(doc))
	for taxonomy, items := range doc {
		var choices []element.Choice
		for _, item := range items {
			if item.Value == nil {
				return nil, fmt.Errorf("terms: %s: term %q has no value", taxonomy, item.Label)
			}
			if len(item.Children) == 0 {
				choices = append(choices, element.Choice{Value: item.Value, Label: labelOf(item)})
				continue
			}
			for _, child := range item.Children {
				choices = append(choices, element.Choice{Value: child.Value, Label: labelOf(child), Group: labelOf(item)})
			}
		}
		table[taxonomy] = choices
	}
	return NewStatic(table), nil
}

// Load reads and parses a YAML term file from fsys.
func Load(fsys fs.FS, path string) (*Static, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("terms: read %s: %w", path, err)
	}
	return Parse(data)
}

func labelOf(t term) string {
	if t.Label != "" {
		return t.Label
	}
	return fmt.Sprint(t.Value)
}

var _ element.TermSource = (*Static)(nil)
