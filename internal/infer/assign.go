package infer

import (
	"strings"

	"scriptsense/internal/ast"
	"scriptsense/internal/source"
	"scriptsense/internal/symbols"
)

func (w *Walker) bindImport(scope symbols.ScopeID, data *ast.StmtImportData) {
	s := w.table.Scope(scope)
	if s == nil {
		return
	}
	for _, alias := range data.Names {
		if alias.AsName != source.NoStringID {
			s.Imports[w.b.Str(alias.AsName)] = symbols.Static(alias.Name)
			continue
		}
		s.Imports[alias.Name] = symbols.Static(alias.Name)
		// "import os.path" also makes "os" reachable
		if head, _, dotted := strings.Cut(alias.Name, "."); dotted {
			if _, ok := s.Imports[head]; !ok {
				s.Imports[head] = symbols.Static(head)
			}
		}
	}
}

func (w *Walker) bindImportFrom(scope symbols.ScopeID, data *ast.StmtImportFromData) {
	s := w.table.Scope(scope)
	if s == nil {
		return
	}
	dots := strings.Repeat(".", int(data.Level))
	module := dots + data.Module
	if data.Star {
		members, ok := w.table.ModuleMembers(module)
		if !ok {
			w.log.V(1).Info("star import from unknown module", "module", module)
			return
		}
		for _, m := range members {
			s.Imports[m] = symbols.Static(qualify(dots, data.Module, m))
		}
		return
	}
	for _, alias := range data.Names {
		key := alias.Name
		if alias.AsName != source.NoStringID {
			key = w.b.Str(alias.AsName)
		}
		s.Imports[key] = symbols.Static(qualify(dots, data.Module, alias.Name))
	}
}

// qualify joins an imported name onto its module; "from . import x" has
// no module part and yields ".x".
func qualify(dots, module, name string) string {
	if module == "" {
		return dots + name
	}
	return dots + module + "." + name
}

// assign handles one target of an assignment statement.
func (w *Walker) assign(scope symbols.ScopeID, target, value ast.ExprID) {
	expr := w.b.Exprs.Get(target)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprName:
		name, _ := w.b.Exprs.Name(target)
		w.table.Scope(scope).Vars[w.b.Str(name.Name)] = w.Infer(value, scope)
	case ast.ExprTuple, ast.ExprList:
		w.destructure(scope, target, value)
	case ast.ExprAttr:
		w.assignAttr(scope, target, value)
	default:
		w.log.V(1).Info("unsupported assignment target", "node", expr.Kind.String())
	}
}

// destructure pairs names with elements of a literal tuple or list. Any
// other right-hand side is not modelled.
func (w *Walker) destructure(scope symbols.ScopeID, target, value ast.ExprID) {
	left, _ := w.b.Exprs.Seq(target)
	right, ok := w.b.Exprs.Seq(value)
	if !ok || right == nil || left == nil {
		return
	}
	if v := w.b.Exprs.Get(value); v == nil || v.Kind == ast.ExprSet {
		return
	}
	for i, elem := range left.Elems {
		if i >= len(right.Elems) {
			break
		}
		if name, ok := w.b.Exprs.Name(elem); ok && name != nil {
			w.table.Scope(scope).Vars[w.b.Str(name.Name)] = w.Infer(right.Elems[i], scope)
		}
	}
}

// assignAttr registers "a.b.c = rhs" on the class bound to a, stepping
// through each attribute while the current binding is a class. Opaque host
// types stop the walk silently.
func (w *Walker) assignAttr(scope symbols.ScopeID, target, value ast.ExprID) {
	var chain []*ast.ExprAttrData
	cur := target
	for {
		attr, ok := w.b.Exprs.Attr(cur)
		if !ok || attr == nil {
			break
		}
		chain = append(chain, attr)
		cur = attr.Target
	}
	base, ok := w.b.Exprs.Name(cur)
	if !ok || base == nil {
		return
	}
	d := w.table.Find(scope, w.b.Str(base.Name))
	for i := len(chain) - 1; i >= 0; i-- {
		cls := w.table.Class(d)
		if cls == nil {
			return
		}
		name := w.b.Str(chain[i].Name)
		if i == 0 {
			rhs := w.Infer(value, scope)
			// Infer may grow the class arena; refetch before writing
			w.table.Class(d).SetAttr(name, rhs)
			return
		}
		cls.AddMember(name)
		next, _ := w.table.MemberType(d, name)
		d = next
	}
}
