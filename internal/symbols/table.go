package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/go-logr/logr"

	"scriptsense/internal/host"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Classes, Funcs uint }

// Env bundles the capabilities the table consults. Nil members are
// treated as empty providers.
type Env struct {
	Host     host.Reflector
	Modules  host.ModuleIndex
	Builtins host.BuiltinIndex
	// Marker is the synthetic capture prefix; CaptureMarker when empty.
	Marker string
	Log    logr.Logger
}

// Table owns one scope tree with its class and function arenas. A table is
// built for a single request and discarded afterwards.
type Table struct {
	Scopes  *Scopes
	Classes *Classes
	Funcs   *Funcs
	env     Env

	builtinClasses map[string]ClassID
	builtinNames   []string
	searchPaths    []string
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints, env Env) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	classCap, err := safecast.Conv[uint32](h.Classes)
	if err != nil {
		panic(fmt.Errorf("class capacity overflow: %w", err))
	}
	funcCap, err := safecast.Conv[uint32](h.Funcs)
	if err != nil {
		panic(fmt.Errorf("func capacity overflow: %w", err))
	}
	if env.Marker == "" {
		env.Marker = CaptureMarker
	}
	if env.Log.GetSink() == nil {
		env.Log = logr.Discard()
	}
	return &Table{
		Scopes:         NewScopes(scopeCap),
		Classes:        NewClasses(classCap),
		Funcs:          NewFuncs(funcCap),
		env:            env,
		builtinClasses: make(map[string]ClassID),
	}
}

// Env returns the capabilities the table was built with.
func (t *Table) Env() Env { return t.env }

// AddSearchPath records a module search root named by the script and hands
// it to the module index when the index accepts new roots.
func (t *Table) AddSearchPath(dir string) {
	if dir == "" {
		return
	}
	t.searchPaths = append(t.searchPaths, dir)
	if ra, ok := t.env.Modules.(host.RootAdder); ok && ra.AddRoot(dir) {
		t.env.Log.V(1).Info("module root from script", "root", dir)
	}
}

// SearchPaths lists the roots recorded by AddSearchPath in script order.
func (t *Table) SearchPaths() []string { return t.searchPaths }

// Log returns the table's logger.
func (t *Table) Log() logr.Logger { return t.env.Log }

// Scope returns the scope pointer or nil.
func (t *Table) Scope(id ScopeID) *Scope { return t.Scopes.Get(id) }

// Class returns the class entry behind d, or nil for other variants.
func (t *Table) Class(d Descriptor) *ClassInfo {
	if d.Kind != DescClass {
		return nil
	}
	return t.Classes.Get(d.Class)
}

// Func returns the function entry behind d, or nil for other variants.
func (t *Table) Func(d Descriptor) *FuncInfo {
	if d.Kind != DescFunction {
		return nil
	}
	return t.Funcs.Get(d.Func)
}

// IsMarker reports whether name is a synthetic capture variable.
func (t *Table) IsMarker(name string) bool {
	return strings.HasPrefix(name, t.env.Marker)
}

// Marker returns the capture prefix in use.
func (t *Table) Marker() string { return t.env.Marker }

// TypeName returns the type name of d: the instance or static name, the
// return type of a function and the name of a class.
func (t *Table) TypeName(d Descriptor) string {
	switch d.Kind {
	case DescInstance, DescStatic:
		return d.Name
	case DescFunction:
		if fn := t.Funcs.Get(d.Func); fn != nil {
			return t.TypeName(fn.Return)
		}
	case DescClass:
		if cls := t.Classes.Get(d.Class); cls != nil {
			return cls.Name
		}
	}
	return ""
}

// Describe renders d for dumps and diagnostics.
func (t *Table) Describe(d Descriptor) string {
	switch d.Kind {
	case DescFunction:
		fn := t.Funcs.Get(d.Func)
		if fn == nil {
			return d.String()
		}
		ret := t.TypeName(fn.Return)
		if ret == "" {
			ret = "?"
		}
		return fmt.Sprintf("def %s(%s) -> %s", fn.Name, strings.Join(fn.Params, ", "), ret)
	case DescClass:
		cls := t.Classes.Get(d.Class)
		if cls == nil {
			return d.String()
		}
		return fmt.Sprintf("class %s(%s) [%s]", cls.Name, strings.Join(cls.Supers, ", "), strings.Join(cls.Members, ", "))
	default:
		return d.String()
	}
}

// ScriptClass finds the most recent script class declared under name.
func (t *Table) ScriptClass(name string) (ClassID, bool) {
	for idx := len(t.Classes.data) - 1; idx >= 1; idx-- {
		cls := &t.Classes.data[idx]
		if cls.Name == name && !cls.Placeholder && !cls.Builtin {
			id, err := safecast.Conv[uint32](idx)
			if err != nil {
				return NoClassID, false
			}
			return ClassID(id), true
		}
	}
	return NoClassID, false
}

// Validate walks the scope arena checking parent/child links.
func (t *Table) Validate() error {
	var problems []string
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			problems = append(problems, fmt.Sprintf("scope %d has invalid kind", idx))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || int(scope.Parent) == idx {
				problems = append(problems, fmt.Sprintf("scope %d has invalid parent %d", idx, scope.Parent))
				continue
			}
			found := false
			for _, child := range t.Scopes.data[scope.Parent].Children {
				if int(child) == idx {
					found = true
					break
				}
			}
			if !found {
				problems = append(problems, fmt.Sprintf("scope %d parent %d missing backlink", idx, scope.Parent))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("symbols: %s", strings.Join(problems, "; "))
	}
	return nil
}
