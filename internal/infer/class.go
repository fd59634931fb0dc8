package infer

import (
	"sort"

	"scriptsense/internal/ast"
	"scriptsense/internal/symbols"
)

// funcDef walks a function body in its own scope and binds the function in
// scope. Every parameter starts as an empty placeholder class so that
// "self.x = ..." inside the body has somewhere to record x.
func (w *Walker) funcDef(scope symbols.ScopeID, data *ast.StmtFuncDefData) symbols.FuncID {
	name := w.b.Str(data.Name)
	fnScope := w.table.Scopes.New(symbols.ScopeFunction, scope, "")
	params := make([]string, 0, len(data.Params))
	for _, p := range data.Params {
		pname := w.b.Str(p.Name)
		params = append(params, pname)
		placeholder := w.table.Classes.New(symbols.ClassInfo{
			Name:        symbols.PlaceholderName,
			Scope:       fnScope,
			Placeholder: true,
		})
		w.table.Scope(fnScope).Vars[pname] = symbols.ClassDesc(placeholder)
	}
	w.Walk(fnScope, data.Body)

	ret := symbols.Unknown()
	if n := len(data.Body); n > 0 {
		last := data.Body[n-1]
		if stmt := w.b.Stmts.Get(last); stmt != nil && stmt.Kind == ast.StmtReturn {
			if exprs, ok := w.b.Stmts.Exprs(last); ok && exprs != nil && len(exprs.Exprs) > 0 {
				ret = w.Infer(exprs.Exprs[0], fnScope)
			}
		}
	}
	id := w.table.Funcs.New(symbols.FuncInfo{
		Name:   name,
		Return: ret,
		Params: params,
		Scope:  fnScope,
		Static: w.hasDecorator(data.Decorators, "staticmethod"),
	})
	w.table.Scope(scope).Vars[name] = symbols.FunctionDesc(id)
	return id
}

func (w *Walker) hasDecorator(decorators []ast.ExprID, name string) bool {
	for _, d := range decorators {
		if w.b.DottedName(d) == name {
			return true
		}
	}
	return false
}

// classDef walks the class body into a tagged scope, builds the class
// entry and unifies the per-method placeholders with it.
func (w *Walker) classDef(scope symbols.ScopeID, data *ast.StmtClassDefData) {
	name := w.b.Str(data.Name)
	classScope := w.table.Scopes.New(symbols.ScopeClass, scope, name)

	var methods []symbols.FuncID
	for _, id := range data.Body {
		if fn, ok := w.b.Stmts.FuncDef(id); ok && fn != nil {
			methods = append(methods, w.funcDef(classScope, fn))
			continue
		}
		w.walkStmt(classScope, id)
	}

	supers := make([]string, 0, len(data.Bases))
	for _, base := range data.Bases {
		tn := w.table.TypeName(w.Infer(base, scope))
		if tn == "" {
			w.log.V(1).Info("unresolved superclass", "class", name, "name", w.b.DottedName(base))
			continue
		}
		supers = append(supers, tn)
	}

	info := symbols.ClassInfo{
		Name:   name,
		Supers: supers,
		Scope:  classScope,
	}
	for _, id := range methods {
		fn := w.table.Funcs.Get(id)
		info.AddMember(fn.Name)
		if fn.Name == "__init__" && len(fn.Params) > 0 {
			info.CtorParams = append([]string(nil), fn.Params[1:]...)
		}
	}
	// атрибуты уровня класса идут после методов
	vars := w.table.Scope(classScope).Vars
	rest := make([]string, 0, len(vars))
	for v, d := range vars {
		if d.Kind != symbols.DescFunction && !w.table.IsMarker(v) {
			rest = append(rest, v)
		}
	}
	sort.Strings(rest)
	for _, v := range rest {
		info.SetAttr(v, vars[v])
	}

	id := w.table.Classes.New(info)
	w.unify(id, methods)
	w.table.Scope(scope).Vars[name] = symbols.ClassDesc(id)
}

// unify merges what every method discovered through its first parameter
// into the class and then overwrites each placeholder with the merged
// class. Holders of a placeholder ID observe the result without re-lookup.
//
// The merge runs once after the whole body: a method cannot see, while its
// own body is being walked, attributes first assigned by a later method.
func (w *Walker) unify(classID symbols.ClassID, methods []symbols.FuncID) {
	var placeholders []symbols.ClassID
	for _, id := range methods {
		fn := w.table.Funcs.Get(id)
		if fn == nil || fn.Static || len(fn.Params) == 0 {
			continue
		}
		s := w.table.Scope(fn.Scope)
		if s == nil {
			continue
		}
		d := s.Vars[fn.Params[0]]
		if cls := w.table.Class(d); cls != nil && cls.Placeholder {
			placeholders = append(placeholders, d.Class)
		}
	}
	if len(placeholders) == 0 {
		return
	}

	auth := w.table.Classes.Get(classID)
	merged := symbols.ClassInfo{
		Name:       auth.Name,
		Supers:     append([]string(nil), auth.Supers...),
		CtorParams: append([]string(nil), auth.CtorParams...),
		Scope:      auth.Scope,
	}
	for _, pid := range placeholders {
		p := w.table.Classes.Get(pid)
		for _, m := range p.Members {
			if d, ok := p.Attrs[m]; ok {
				merged.SetAttr(m, d)
			} else {
				merged.AddMember(m)
			}
		}
	}
	for _, m := range auth.Members {
		if d, ok := auth.Attrs[m]; ok {
			merged.SetAttr(m, d)
		} else {
			merged.AddMember(m)
		}
	}

	*auth = cloneClass(merged)
	for _, pid := range placeholders {
		*w.table.Classes.Get(pid) = cloneClass(merged)
	}
}

// cloneClass copies slices and maps so that later mutation through one
// entry does not leak into another.
func cloneClass(c symbols.ClassInfo) symbols.ClassInfo {
	out := c
	out.Supers = append([]string(nil), c.Supers...)
	out.CtorParams = append([]string(nil), c.CtorParams...)
	out.Members = append([]string(nil), c.Members...)
	if c.Attrs != nil {
		out.Attrs = make(map[string]symbols.Descriptor, len(c.Attrs))
		for k, v := range c.Attrs {
			out.Attrs[k] = v
		}
	}
	return out
}
