package host

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// ClassSpec is the on-disk description of one host class.
type ClassSpec struct {
	Name         string       `yaml:"name"`
	Supers       []string     `yaml:"supers"`
	Constructors [][]Param    `yaml:"constructors"`
	Fields       []FieldSpec  `yaml:"fields"`
	Methods      []MethodSpec `yaml:"methods"`
}

type FieldSpec struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Static bool   `yaml:"static"`
}

type MethodSpec struct {
	Name    string  `yaml:"name"`
	Returns string  `yaml:"returns"`
	Static  bool    `yaml:"static"`
	Params  []Param `yaml:"params"`
}

type catalogFile struct {
	Classes []ClassSpec `yaml:"classes"`
}

// Catalog is a Reflector backed by a static class table. Lookups flatten
// superclass members (own members first) and are memoized.
type Catalog struct {
	specs map[string]ClassSpec

	mu    sync.Mutex
	cache map[string]*Class
}

// NewCatalog builds a catalog from in-memory specs. Later specs replace
// earlier ones with the same name.
func NewCatalog(specs ...ClassSpec) *Catalog {
	c := &Catalog{
		specs: make(map[string]ClassSpec, len(specs)),
		cache: make(map[string]*Class),
	}
	for _, s := range specs {
		c.specs[s.Name] = s
	}
	return c
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode host catalog: %w", err)
	}
	for i, s := range file.Classes {
		if s.Name == "" {
			return nil, fmt.Errorf("decode host catalog: class #%d has no name", i+1)
		}
	}
	return NewCatalog(file.Classes...), nil
}

// LoadCatalog reads and decodes a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Names returns every class name in the catalog, sorted.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.specs))
	for name := range c.specs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup implements Reflector.
func (c *Catalog) Lookup(className string) (*Class, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(className, map[string]bool{})
}

func (c *Catalog) lookup(name string, visiting map[string]bool) (*Class, error) {
	if cls, ok := c.cache[name]; ok {
		return cls, nil
	}
	spec, ok := c.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	cls := &Class{
		Name:         spec.Name,
		Supers:       append([]string(nil), spec.Supers...),
		Constructors: spec.Constructors,
	}
	for _, f := range spec.Fields {
		cls.Members = append(cls.Members, Member{
			Name:          f.Name,
			Static:        f.Static,
			Field:         true,
			DeclaringType: spec.Name,
			ValueType:     f.Type,
		})
	}
	for _, m := range spec.Methods {
		cls.Members = append(cls.Members, Member{
			Name:          m.Name,
			Static:        m.Static,
			DeclaringType: spec.Name,
			ValueType:     m.Returns,
			Params:        m.Params,
		})
	}
	for _, super := range spec.Supers {
		if visiting[super] {
			continue
		}
		parent, err := c.lookup(super, visiting)
		if err != nil {
			// суперкласс вне каталога: просто без унаследованных членов
			continue
		}
		for _, m := range parent.Members {
			if !hasMember(cls.Members, m) {
				cls.Members = append(cls.Members, m)
			}
		}
	}
	c.cache[name] = cls
	return cls, nil
}

func hasMember(list []Member, m Member) bool {
	for _, have := range list {
		if have.Name == m.Name && have.Field == m.Field && len(have.Params) == len(m.Params) {
			return true
		}
	}
	return false
}
