// Package infer builds the scope tree of a parsed script and assigns every
// binding a best-effort type descriptor. Nothing here returns errors:
// anything that cannot be modelled degrades to an unknown type.
package infer

import (
	"github.com/go-logr/logr"

	"scriptsense/internal/ast"
	"scriptsense/internal/symbols"
)

// Walker carries the state of one scope-building pass.
type Walker struct {
	b     *ast.Builder
	table *symbols.Table
	log   logr.Logger
}

// NewWalker binds a walker to a parsed script and a fresh table.
func NewWalker(b *ast.Builder, table *symbols.Table) *Walker {
	return &Walker{b: b, table: table, log: table.Log()}
}

// BuildScope walks the top-level statement list and returns the root
// scope. The scope active at the end of the script is table.Last(root).
func BuildScope(b *ast.Builder, body []ast.StmtID, table *symbols.Table) symbols.ScopeID {
	w := NewWalker(b, table)
	root := table.Scopes.New(symbols.ScopeModule, symbols.NoScopeID, "")
	w.Walk(root, body)
	return root
}

// Walk processes stmts against scope.
func (w *Walker) Walk(scope symbols.ScopeID, stmts []ast.StmtID) {
	for _, id := range stmts {
		w.walkStmt(scope, id)
	}
}

func (w *Walker) walkStmt(scope symbols.ScopeID, id ast.StmtID) {
	stmt := w.b.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtImport:
		if data, ok := w.b.Stmts.Import(id); ok && data != nil {
			w.bindImport(scope, data)
		}
	case ast.StmtImportFrom:
		if data, ok := w.b.Stmts.ImportFrom(id); ok && data != nil {
			w.bindImportFrom(scope, data)
		}
	case ast.StmtAssign:
		if data, ok := w.b.Stmts.Assign(id); ok && data != nil {
			for _, target := range data.Targets {
				w.assign(scope, target, data.Value)
			}
		}
	case ast.StmtFuncDef:
		if data, ok := w.b.Stmts.FuncDef(id); ok && data != nil {
			w.funcDef(scope, data)
		}
	case ast.StmtClassDef:
		if data, ok := w.b.Stmts.ClassDef(id); ok && data != nil {
			w.classDef(scope, data)
		}
	// блоки управления не создают новую область видимости
	case ast.StmtIf, ast.StmtWhile:
		if data, ok := w.b.Stmts.If(id); ok && data != nil {
			w.Walk(scope, data.Body)
			w.Walk(scope, data.Else)
		}
	case ast.StmtFor:
		if data, ok := w.b.Stmts.For(id); ok && data != nil {
			w.bindNames(scope, data.Target, symbols.Unknown())
			w.Walk(scope, data.Body)
			w.Walk(scope, data.Else)
		}
	case ast.StmtTry:
		if data, ok := w.b.Stmts.Try(id); ok && data != nil {
			w.Walk(scope, data.Body)
			for _, h := range data.Handlers {
				if h.Name.IsValid() {
					w.bindNames(scope, h.Name, w.instanceOf(w.Infer(h.Type, scope)))
				}
				w.Walk(scope, h.Body)
			}
			w.Walk(scope, data.Else)
			w.Walk(scope, data.Finally)
		}
	case ast.StmtWith:
		if data, ok := w.b.Stmts.With(id); ok && data != nil {
			for _, item := range data.Items {
				if item.Target.IsValid() {
					w.bindNames(scope, item.Target, w.Infer(item.Context, scope))
				}
			}
			w.Walk(scope, data.Body)
		}
	case ast.StmtExpr:
		if data, ok := w.b.Stmts.Exprs(id); ok && data != nil && len(data.Exprs) == 1 {
			if dir, ok := w.sysPathAppend(data.Exprs[0]); ok {
				w.table.AddSearchPath(dir)
			}
		}
	default:
		w.log.V(1).Info("ignored statement", "node", stmt.Kind.String())
	}
}

// bindNames binds every simple name of a name, tuple or list target to d.
func (w *Walker) bindNames(scope symbols.ScopeID, target ast.ExprID, d symbols.Descriptor) {
	s := w.table.Scope(scope)
	if s == nil {
		return
	}
	if name, ok := w.b.Exprs.Name(target); ok && name != nil {
		s.Vars[w.b.Str(name.Name)] = d
		return
	}
	if seq, ok := w.b.Exprs.Seq(target); ok && seq != nil {
		for _, elem := range seq.Elems {
			w.bindNames(scope, elem, symbols.Unknown())
		}
	}
}

// instanceOf turns a class reference into an instance of it.
func (w *Walker) instanceOf(d symbols.Descriptor) symbols.Descriptor {
	switch d.Kind {
	case symbols.DescStatic:
		return symbols.Instance(d.Name)
	case symbols.DescClass:
		return d
	}
	return symbols.Unknown()
}
