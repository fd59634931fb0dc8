// Package host describes the capabilities the completion engine consumes
// from its embedding application: reflection over host classes, the module
// index and the builtin symbol table. Reference implementations live next
// to the interfaces so tests and the CLI can run without a JVM.
package host

import (
	"errors"
	"strings"
)

// ErrClassNotFound is returned by a Reflector when the class is unknown.
var ErrClassNotFound = errors.New("host class not found")

// BuiltinPrefix marks entries of the builtin symbol index.
const BuiltinPrefix = "__builtin__."

// Reflector resolves fully qualified host class names.
type Reflector interface {
	Lookup(className string) (*Class, error)
}

// ModuleIndex reports whether a dotted path is a loadable module and, if so,
// its top-level member names. Implementations must be safe for concurrent use.
type ModuleIndex interface {
	ModuleMembers(path string) ([]string, bool)
}

// RootAdder is implemented by module indexes whose search roots can grow
// while scripts are analysed, as with sys.path.append.
type RootAdder interface {
	AddRoot(dir string) bool
}

// BuiltinIndex is a flat table of "__builtin__.owner.member" entries.
type BuiltinIndex interface {
	Entries() []string
}

// Param is one constructor or method parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Member is a public field or method of a host class.
type Member struct {
	Name          string
	Static        bool
	Field         bool
	DeclaringType string
	// ValueType is the field type or the method return type.
	ValueType string
	Params    []Param
}

// Class is a reflected host class with inherited members already flattened.
type Class struct {
	Name         string
	Supers       []string
	Members      []Member
	Constructors [][]Param
}

// Instance returns the non-static members of c.
func (c *Class) Instance() []Member {
	return c.filter(false)
}

// Statics returns the static members of c.
func (c *Class) Statics() []Member {
	return c.filter(true)
}

func (c *Class) filter(static bool) []Member {
	if c == nil {
		return nil
	}
	out := make([]Member, 0, len(c.Members))
	for _, m := range c.Members {
		if m.Static == static {
			out = append(out, m)
		}
	}
	return out
}

// Method returns the first method named name.
func (c *Class) Method(name string) (Member, bool) {
	return c.find(name, false)
}

// FieldByName returns the first field named name.
func (c *Class) FieldByName(name string) (Member, bool) {
	return c.find(name, true)
}

func (c *Class) find(name string, field bool) (Member, bool) {
	if c == nil {
		return Member{}, false
	}
	for _, m := range c.Members {
		if m.Name == name && m.Field == field {
			return m, true
		}
	}
	return Member{}, false
}

// ReturnTypes lists the distinct return types of every method named name,
// in declaration order.
func (c *Class) ReturnTypes(name string) []string {
	if c == nil {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, m := range c.Members {
		if m.Field || m.Name != name || m.ValueType == "" {
			continue
		}
		if _, ok := seen[m.ValueType]; ok {
			continue
		}
		seen[m.ValueType] = struct{}{}
		out = append(out, m.ValueType)
	}
	return out
}

// SplitOwner splits "pkg.Owner.member" into "pkg.Owner" and "member".
func SplitOwner(name string) (owner, member string, ok bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	return name[:idx], name[idx+1:], true
}

// LookupQuiet is Lookup without the error, for callers that treat any
// reflection failure as "no members".
func LookupQuiet(r Reflector, className string) *Class {
	if r == nil || className == "" {
		return nil
	}
	cls, err := r.Lookup(className)
	if err != nil {
		return nil
	}
	return cls
}
