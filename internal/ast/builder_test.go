package ast

import (
	"testing"

	"scriptsense/internal/source"
)

func TestDottedName(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	a := b.Exprs.NewName(sp, b.Intern("java"))
	ab := b.Exprs.NewAttr(sp, a, b.Intern("util"), sp)
	abc := b.Exprs.NewAttr(sp, ab, b.Intern("List"), sp)
	if got := b.DottedName(abc); got != "java.util.List" {
		t.Fatalf("DottedName = %q", got)
	}
	call := b.Exprs.NewCall(sp, abc, nil, nil)
	if got := b.DottedName(b.Exprs.NewAttr(sp, call, b.Intern("x"), sp)); got != "" {
		t.Fatalf("DottedName through a call = %q, want empty", got)
	}
}

func TestPayloadKindChecks(t *testing.T) {
	b := NewBuilder(Hints{})
	num := b.Exprs.NewNum(source.Span{}, "1.5", true)
	if _, ok := b.Exprs.Name(num); ok {
		t.Fatalf("Name() must reject a Num expression")
	}
	if d, ok := b.Exprs.Num(num); !ok || !d.Float || d.Text != "1.5" {
		t.Fatalf("Num() = %+v, %v", d, ok)
	}
	if _, ok := b.Exprs.Num(NoExprID); ok {
		t.Fatalf("NoExprID must not resolve")
	}

	tup := b.Exprs.NewSeq(ExprTuple, source.Span{}, []ExprID{num})
	if s, ok := b.Exprs.Seq(tup); !ok || len(s.Elems) != 1 {
		t.Fatalf("Seq() = %+v, %v", s, ok)
	}

	w := b.Stmts.NewIf(StmtWhile, source.Span{}, StmtIfData{Cond: num})
	if d, ok := b.Stmts.If(w); !ok || d.Cond != num {
		t.Fatalf("If() on while = %+v, %v", d, ok)
	}
	if _, ok := b.Stmts.For(w); ok {
		t.Fatalf("For() must reject a while statement")
	}
	ret := b.Stmts.NewExprs(StmtReturn, source.Span{}, []ExprID{num})
	if d, ok := b.Stmts.Exprs(ret); !ok || d.Exprs[0] != num {
		t.Fatalf("Exprs() on return = %+v, %v", d, ok)
	}
}
