package modindex

import (
	"context"
	"slices"
	"strings"
)

// Static is a fixed module table. Useful for tests and for hosts that
// publish their module list up front.
type Static struct {
	modules map[string][]string
}

// NewStatic copies modules; member lists are sorted.
func NewStatic(modules map[string][]string) *Static {
	s := &Static{modules: make(map[string][]string, len(modules))}
	for path, members := range modules {
		m := slices.Clone(members)
		slices.Sort(m)
		s.modules[path] = slices.Compact(m)
	}
	return s
}

func (s *Static) ModuleMembers(path string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.modules[path]
	if !ok {
		return nil, false
	}
	return slices.Clone(m), true
}

// List returns module paths starting with prefix, sorted.
func (s *Static) List(_ context.Context, prefix string) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	var out []string
	for path := range s.modules {
		if strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}
	slices.Sort(out)
	return out, nil
}
