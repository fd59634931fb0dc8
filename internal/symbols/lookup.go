package symbols

import (
	"sort"
	"strings"

	"scriptsense/internal/host"
)

// Find resolves name from scope outward: variables first, then imports, at
// every level. When nothing is bound, builtin entries shaped
// "__builtin__.<name>.<member>" synthesise a class descriptor.
func (t *Table) Find(scope ScopeID, name string) Descriptor {
	for id := scope; id.IsValid(); {
		s := t.Scopes.Get(id)
		if s == nil {
			break
		}
		if d, ok := s.Vars[name]; ok {
			return d
		}
		if d, ok := s.Imports[name]; ok {
			return d
		}
		id = s.Parent
	}
	if id, ok := t.builtinClass(name); ok {
		return ClassDesc(id)
	}
	t.env.Log.V(1).Info("unresolved name", "name", name)
	return Unknown()
}

func (t *Table) builtinClass(name string) (ClassID, bool) {
	if id, ok := t.builtinClasses[name]; ok {
		return id, id.IsValid()
	}
	if t.env.Builtins == nil || name == "" {
		return NoClassID, false
	}
	prefix := host.BuiltinPrefix + name + "."
	var members []string
	for _, entry := range t.env.Builtins.Entries() {
		if rest, ok := strings.CutPrefix(entry, prefix); ok && rest != "" {
			members = append(members, rest)
		}
	}
	if len(members) == 0 {
		t.builtinClasses[name] = NoClassID
		return NoClassID, false
	}
	id := t.Classes.New(ClassInfo{Name: name, Members: members, Builtin: true})
	t.builtinClasses[name] = id
	return id, true
}

func (t *Table) builtinNamesList() []string {
	if t.builtinNames != nil || t.env.Builtins == nil {
		return t.builtinNames
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, entry := range t.env.Builtins.Entries() {
		rest, ok := strings.CutPrefix(entry, host.BuiltinPrefix)
		if !ok {
			continue
		}
		owner, _, _ := strings.Cut(rest, ".")
		if _, dup := seen[owner]; dup || owner == "" {
			continue
		}
		seen[owner] = struct{}{}
		names = append(names, owner)
	}
	t.builtinNames = names
	return names
}

// FindStartsWith returns the sorted set of visible names starting with
// prefix: variables and imports along the parent chain plus builtins.
func (t *Table) FindStartsWith(scope ScopeID, prefix string) []string {
	found := t.FindStartsWithTypes(scope, prefix)
	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FindStartsWithTypes is FindStartsWith with the bound type name of every
// hit ("" for builtins). The innermost binding of a name wins.
func (t *Table) FindStartsWithTypes(scope ScopeID, prefix string) map[string]string {
	out := make(map[string]string)
	for id := scope; id.IsValid(); {
		s := t.Scopes.Get(id)
		if s == nil {
			break
		}
		for _, table := range []map[string]Descriptor{s.Vars, s.Imports} {
			for name, d := range table {
				if !strings.HasPrefix(name, prefix) || t.IsMarker(name) {
					continue
				}
				if _, ok := out[name]; !ok {
					out[name] = t.TypeName(d)
				}
			}
		}
		id = s.Parent
	}
	for _, name := range t.builtinNamesList() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := out[name]; !ok {
			out[name] = ""
		}
	}
	return out
}

// FindVarsByType lists variables assignable to a parameter declared as
// typeName (host type hostType), innermost scope first. Each name is
// reported once; shadowed outer bindings are not considered. Capture
// variables are never returned.
func (t *Table) FindVarsByType(scope ScopeID, typeName, hostType string) []string {
	var out []string
	seen := make(map[string]struct{})
	for id := scope; id.IsValid(); {
		s := t.Scopes.Get(id)
		if s == nil {
			break
		}
		names := make([]string, 0, len(s.Vars))
		for name := range s.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			if t.IsMarker(name) {
				continue
			}
			d := s.Vars[name]
			if d.Kind != DescInstance {
				continue
			}
			if t.compatible(d.Name, typeName, hostType) {
				out = append(out, name)
			}
		}
		id = s.Parent
	}
	return out
}

func (t *Table) compatible(have, typeName, hostType string) bool {
	for _, want := range []string{typeName, hostType} {
		if want == "" {
			continue
		}
		if host.Assignable(t.env.Host, have, want) {
			return true
		}
	}
	return false
}

// Last returns the rightmost leaf under scope: the scope active at the end
// of the analysed fragment.
func (t *Table) Last(scope ScopeID) ScopeID {
	for {
		s := t.Scopes.Get(scope)
		if s == nil || len(s.Children) == 0 {
			return scope
		}
		scope = s.Children[len(s.Children)-1]
	}
}

// Visible merges the variables and imports visible from scope, inner
// bindings shadowing outer ones.
func (t *Table) Visible(scope ScopeID) (imports, vars map[string]Descriptor) {
	imports = make(map[string]Descriptor)
	vars = make(map[string]Descriptor)
	for id := scope; id.IsValid(); {
		s := t.Scopes.Get(id)
		if s == nil {
			break
		}
		for name, d := range s.Imports {
			if _, ok := imports[name]; !ok {
				imports[name] = d
			}
		}
		for name, d := range s.Vars {
			if _, ok := vars[name]; !ok {
				vars[name] = d
			}
		}
		id = s.Parent
	}
	return imports, vars
}
