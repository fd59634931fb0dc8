package ast

import (
	"scriptsense/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Names      *Arena[ExprNameData]
	Nums       *Arena[ExprNumData]
	Strs       *Arena[ExprStrData]
	Attrs      *Arena[ExprAttrData]
	Calls      *Arena[ExprCallData]
	Subscripts *Arena[ExprSubscriptData]
	Binaries   *Arena[ExprBinaryData]
	Unaries    *Arena[ExprUnaryData]
	Seqs       *Arena[ExprSeqData]
	Dicts      *Arena[ExprDictData]
	Lambdas    *Arena[ExprLambdaData]
	Ifs        *Arena[ExprIfData]
	Yields     *Arena[ExprYieldData]
	Comps      *Arena[ExprCompData]
	Slices     *Arena[ExprSliceData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/8 + 1
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Names:      NewArena[ExprNameData](capHint),
		Nums:       NewArena[ExprNumData](small),
		Strs:       NewArena[ExprStrData](small),
		Attrs:      NewArena[ExprAttrData](small),
		Calls:      NewArena[ExprCallData](small),
		Subscripts: NewArena[ExprSubscriptData](small),
		Binaries:   NewArena[ExprBinaryData](small),
		Unaries:    NewArena[ExprUnaryData](small),
		Seqs:       NewArena[ExprSeqData](small),
		Dicts:      NewArena[ExprDictData](small),
		Lambdas:    NewArena[ExprLambdaData](small),
		Ifs:        NewArena[ExprIfData](small),
		Yields:     NewArena[ExprYieldData](small),
		Comps:      NewArena[ExprCompData](small),
		Slices:     NewArena[ExprSliceData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func payloadOf[T any](e *Exprs, id ExprID, want ExprKind, arena *Arena[T]) (*T, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != want {
		return nil, false
	}
	return arena.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewName(span source.Span, name source.StringID) ExprID {
	return e.new(ExprName, span, e.Names.Allocate(ExprNameData{Name: name}))
}

func (e *Exprs) Name(id ExprID) (*ExprNameData, bool) {
	return payloadOf(e, id, ExprName, e.Names)
}

func (e *Exprs) NewNum(span source.Span, text string, float bool) ExprID {
	return e.new(ExprNum, span, e.Nums.Allocate(ExprNumData{Float: float, Text: text}))
}

func (e *Exprs) Num(id ExprID) (*ExprNumData, bool) {
	return payloadOf(e, id, ExprNum, e.Nums)
}

func (e *Exprs) NewStr(span source.Span, raw string) ExprID {
	return e.new(ExprStr, span, e.Strs.Allocate(ExprStrData{Raw: raw}))
}

func (e *Exprs) Str(id ExprID) (*ExprStrData, bool) {
	return payloadOf(e, id, ExprStr, e.Strs)
}

func (e *Exprs) NewAttr(span source.Span, target ExprID, name source.StringID, nameSpan source.Span) ExprID {
	return e.new(ExprAttr, span, e.Attrs.Allocate(ExprAttrData{Target: target, Name: name, NameSpan: nameSpan}))
}

func (e *Exprs) Attr(id ExprID) (*ExprAttrData, bool) {
	return payloadOf(e, id, ExprAttr, e.Attrs)
}

func (e *Exprs) NewCall(span source.Span, fn ExprID, args []ExprID, kws []Keyword) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Fn: fn, Args: args, Keywords: kws}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	return payloadOf(e, id, ExprCall, e.Calls)
}

func (e *Exprs) NewSubscript(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprSubscript, span, e.Subscripts.Allocate(ExprSubscriptData{Target: target, Index: index}))
}

func (e *Exprs) Subscript(id ExprID) (*ExprSubscriptData, bool) {
	return payloadOf(e, id, ExprSubscript, e.Subscripts)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	return payloadOf(e, id, ExprBinary, e.Binaries)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	return payloadOf(e, id, ExprUnary, e.Unaries)
}

// NewSeq allocates a tuple, list or set display.
func (e *Exprs) NewSeq(kind ExprKind, span source.Span, elems []ExprID) ExprID {
	switch kind {
	case ExprTuple, ExprList, ExprSet:
	default:
		panic("ast: NewSeq with non-sequence kind " + kind.String())
	}
	return e.new(kind, span, e.Seqs.Allocate(ExprSeqData{Elems: elems}))
}

// Seq returns the elements of a tuple, list or set display.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprTuple, ExprList, ExprSet:
		return e.Seqs.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	return e.new(ExprDict, span, e.Dicts.Allocate(ExprDictData{Keys: keys, Values: values}))
}

func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	return payloadOf(e, id, ExprDict, e.Dicts)
}

func (e *Exprs) NewLambda(span source.Span, params []Param, body ExprID) ExprID {
	return e.new(ExprLambda, span, e.Lambdas.Allocate(ExprLambdaData{Params: params, Body: body}))
}

func (e *Exprs) Lambda(id ExprID) (*ExprLambdaData, bool) {
	return payloadOf(e, id, ExprLambda, e.Lambdas)
}

func (e *Exprs) NewIf(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprIf, span, e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	return payloadOf(e, id, ExprIf, e.Ifs)
}

func (e *Exprs) NewYield(span source.Span, value ExprID) ExprID {
	return e.new(ExprYield, span, e.Yields.Allocate(ExprYieldData{Value: value}))
}

func (e *Exprs) Yield(id ExprID) (*ExprYieldData, bool) {
	return payloadOf(e, id, ExprYield, e.Yields)
}

func (e *Exprs) NewComp(span source.Span, data ExprCompData) ExprID {
	return e.new(ExprComp, span, e.Comps.Allocate(data))
}

func (e *Exprs) Comp(id ExprID) (*ExprCompData, bool) {
	return payloadOf(e, id, ExprComp, e.Comps)
}

func (e *Exprs) NewSlice(span source.Span, lo, hi, step ExprID) ExprID {
	return e.new(ExprSlice, span, e.Slices.Allocate(ExprSliceData{Lo: lo, Hi: hi, Step: step}))
}

func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	return payloadOf(e, id, ExprSlice, e.Slices)
}
