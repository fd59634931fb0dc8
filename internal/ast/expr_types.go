package ast

import (
	"scriptsense/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprName ExprKind = iota
	ExprNum
	ExprStr
	ExprAttr
	ExprCall
	ExprSubscript
	ExprBinary
	ExprUnary
	ExprTuple
	ExprList
	ExprSet
	ExprDict
	ExprLambda
	ExprIf
	ExprYield
	ExprComp
	ExprSlice
)

var exprKindNames = [...]string{
	ExprName:      "Name",
	ExprNum:       "Num",
	ExprStr:       "Str",
	ExprAttr:      "Attribute",
	ExprCall:      "Call",
	ExprSubscript: "Subscript",
	ExprBinary:    "BinOp",
	ExprUnary:     "UnaryOp",
	ExprTuple:     "Tuple",
	ExprList:      "List",
	ExprSet:       "Set",
	ExprDict:      "Dict",
	ExprLambda:    "Lambda",
	ExprIf:        "IfExp",
	ExprYield:     "Yield",
	ExprComp:      "Comprehension",
	ExprSlice:     "Slice",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr?"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp covers arithmetic, boolean and comparison operators alike;
// completion never needs to tell the families apart beyond IsArith.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinShl
	BinShr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinAnd
	BinOr
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinIn
	BinNotIn
	BinIs
	BinIsNot
)

// IsArith reports whether the operator is arithmetic or bitwise.
func (op BinaryOp) IsArith() bool {
	return op <= BinBitXor
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryPos
	UnaryInvert
	UnaryNot
	UnaryRepr  // `x`
	UnaryStar  // *args at a call site
	UnaryDStar // **kwargs at a call site
)

type ExprNameData struct {
	Name source.StringID
}

type ExprNumData struct {
	Float bool
	Text  string
}

type ExprStrData struct {
	Raw string // как в исходнике, с кавычками и префиксом
}

type ExprAttrData struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type Keyword struct {
	Name  source.StringID
	Value ExprID
}

type ExprCallData struct {
	Fn       ExprID
	Args     []ExprID
	Keywords []Keyword
}

type ExprSubscriptData struct {
	Target ExprID
	Index  ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

// ExprSeqData backs tuples, lists and sets.
type ExprSeqData struct {
	Elems []ExprID
}

type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

type ExprLambdaData struct {
	Params []Param
	Body   ExprID
}

type ExprIfData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

type ExprYieldData struct {
	Value ExprID // NoExprID for a bare yield
}

type CompForm uint8

const (
	CompList CompForm = iota
	CompGen
	CompSet
	CompDict
)

type CompClause struct {
	Target ExprID
	Iter   ExprID
	Ifs    []ExprID
}

type ExprCompData struct {
	Form    CompForm
	Elt     ExprID // key for dict comprehensions
	Value   ExprID // value for dict comprehensions
	Clauses []CompClause
}

type ExprSliceData struct {
	Lo, Hi, Step ExprID
}
