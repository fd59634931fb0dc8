package infer

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/symbols"
)

// Infer maps an expression to a type descriptor in the context of scope.
func (w *Walker) Infer(id ast.ExprID, scope symbols.ScopeID) symbols.Descriptor {
	expr := w.b.Exprs.Get(id)
	if expr == nil {
		return symbols.Unknown()
	}
	switch expr.Kind {
	case ast.ExprName:
		if name, ok := w.b.Exprs.Name(id); ok && name != nil {
			return w.table.Find(scope, w.b.Str(name.Name))
		}
	case ast.ExprNum:
		if num, ok := w.b.Exprs.Num(id); ok && num != nil {
			return numType(num)
		}
	case ast.ExprStr:
		return symbols.Instance(symbols.StringTypeName)
	case ast.ExprAttr:
		if attr, ok := w.b.Exprs.Attr(id); ok && attr != nil {
			return w.inferAttr(attr, scope)
		}
	case ast.ExprCall:
		if call, ok := w.b.Exprs.Call(id); ok && call != nil {
			return w.callResult(w.Infer(call.Fn, scope))
		}
	case ast.ExprYield:
		if y, ok := w.b.Exprs.Yield(id); ok && y != nil {
			return w.Infer(y.Value, scope)
		}
	case ast.ExprBinary:
		if bin, ok := w.b.Exprs.Binary(id); ok && bin != nil && bin.Op.IsArith() {
			return w.inferBinary(bin, scope)
		}
	}
	return symbols.Unknown()
}

func numType(num *ast.ExprNumData) symbols.Descriptor {
	if num.Float {
		return symbols.Instance(symbols.FloatingTypeName)
	}
	return symbols.Instance(symbols.IntegralTypeName)
}

func (w *Walker) inferAttr(attr *ast.ExprAttrData, scope symbols.ScopeID) symbols.Descriptor {
	base := w.Infer(attr.Target, scope)
	if base.IsUnknown() {
		return base
	}
	name := w.b.Str(attr.Name)
	if d, ok := w.table.MemberType(base, name); ok {
		return d
	}
	// может быть подмодулем: "os.path"
	if baseName := w.table.TypeName(base); baseName != "" {
		path := baseName + "." + name
		if w.table.IsModule(path) {
			return symbols.Static(path)
		}
	}
	return symbols.Unknown()
}

// callResult is the type of calling a value of type callee. Argument
// expressions never refine it.
func (w *Walker) callResult(callee symbols.Descriptor) symbols.Descriptor {
	switch callee.Kind {
	case symbols.DescStatic:
		// constructor of a host class
		return symbols.Instance(callee.Name)
	case symbols.DescFunction:
		fn := w.table.Func(callee)
		if fn == nil {
			return symbols.Unknown()
		}
		switch fn.Return.Kind {
		case symbols.DescUnknown, symbols.DescClass:
			return fn.Return
		}
		return symbols.Instance(w.table.TypeName(fn.Return))
	}
	return callee
}

// inferBinary is a deliberately weak heuristic: two number literals give
// integral only when both are integral, otherwise the left operand's type
// wins unless it is unknown.
func (w *Walker) inferBinary(bin *ast.ExprBinaryData, scope symbols.ScopeID) symbols.Descriptor {
	l, lok := w.b.Exprs.Num(bin.Left)
	r, rok := w.b.Exprs.Num(bin.Right)
	if lok && rok && l != nil && r != nil {
		if !l.Float && !r.Float {
			return symbols.Instance(symbols.IntegralTypeName)
		}
		return symbols.Instance(symbols.FloatingTypeName)
	}
	if d := w.Infer(bin.Left, scope); !d.IsUnknown() {
		return d
	}
	return w.Infer(bin.Right, scope)
}
