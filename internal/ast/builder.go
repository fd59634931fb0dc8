package ast

import (
	"scriptsense/internal/source"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns every arena of one parsed script together with the
// identifier interner the payloads point into.
type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Strings *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
		Strings: source.NewInterner(),
	}
}

// Module is the parsed statement list of one script.
type Module struct {
	Span source.Span
	Body []StmtID
}

// Str resolves an interned identifier; unknown IDs yield "".
func (b *Builder) Str(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// Intern is a shortcut for b.Strings.Intern.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// DottedName renders a chain of names and attributes ("a.b.c"). It returns
// "" when the chain contains anything else.
func (b *Builder) DottedName(id ExprID) string {
	switch expr := b.Exprs.Get(id); {
	case expr == nil:
		return ""
	case expr.Kind == ExprName:
		n, _ := b.Exprs.Name(id)
		return b.Str(n.Name)
	case expr.Kind == ExprAttr:
		a, _ := b.Exprs.Attr(id)
		base := b.DottedName(a.Target)
		if base == "" {
			return ""
		}
		return base + "." + b.Str(a.Name)
	}
	return ""
}
