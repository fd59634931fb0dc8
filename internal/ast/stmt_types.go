package ast

import (
	"scriptsense/internal/source"
)

type StmtKind uint8

const (
	StmtImport StmtKind = iota
	StmtImportFrom
	StmtAssign
	StmtAugAssign
	StmtExpr
	StmtFuncDef
	StmtClassDef
	StmtReturn
	StmtIf
	StmtFor
	StmtWhile
	StmtTry
	StmtWith
	StmtPass
	StmtBreak
	StmtContinue
	StmtGlobal
	StmtDel
	StmtRaise
	StmtAssert
	StmtPrint
	StmtExec
)

var stmtKindNames = [...]string{
	StmtImport:     "Import",
	StmtImportFrom: "ImportFrom",
	StmtAssign:     "Assign",
	StmtAugAssign:  "AugAssign",
	StmtExpr:       "Expr",
	StmtFuncDef:    "FunctionDef",
	StmtClassDef:   "ClassDef",
	StmtReturn:     "Return",
	StmtIf:         "If",
	StmtFor:        "For",
	StmtWhile:      "While",
	StmtTry:        "Try",
	StmtWith:       "With",
	StmtPass:       "Pass",
	StmtBreak:      "Break",
	StmtContinue:   "Continue",
	StmtGlobal:     "Global",
	StmtDel:        "Delete",
	StmtRaise:      "Raise",
	StmtAssert:     "Assert",
	StmtPrint:      "Print",
	StmtExec:       "Exec",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// Alias is one imported name. Name may be dotted for plain imports.
type Alias struct {
	Name   string
	AsName source.StringID // NoStringID when there is no "as"
	Span   source.Span
}

type StmtImportData struct {
	Names []Alias
}

type StmtImportFromData struct {
	Module string // может быть пустым для "from . import x"
	Level  uint8  // число ведущих точек
	Names  []Alias
	Star   bool
}

type StmtAssignData struct {
	Targets []ExprID // a = b = rhs даёт две цели
	Value   ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp
	Value  ExprID
}

type ParamKind uint8

const (
	ParamPlain ParamKind = iota
	ParamVarArgs
	ParamKwArgs
)

type Param struct {
	Name    source.StringID
	Kind    ParamKind
	Default ExprID
	Span    source.Span
}

type StmtFuncDefData struct {
	Name       source.StringID
	Params     []Param
	Body       []StmtID
	Decorators []ExprID
}

type StmtClassDefData struct {
	Name       source.StringID
	Bases      []ExprID
	Body       []StmtID
	Decorators []ExprID
}

// StmtIfData also serves while loops; elif chains nest in Else.
type StmtIfData struct {
	Cond ExprID
	Body []StmtID
	Else []StmtID
}

type StmtForData struct {
	Target ExprID
	Iter   ExprID
	Body   []StmtID
	Else   []StmtID
}

type ExceptHandler struct {
	Type ExprID
	Name ExprID
	Body []StmtID
}

type StmtTryData struct {
	Body     []StmtID
	Handlers []ExceptHandler
	Else     []StmtID
	Finally  []StmtID
}

type WithItem struct {
	Context ExprID
	Target  ExprID
}

type StmtWithData struct {
	Items []WithItem
	Body  []StmtID
}

// StmtExprsData backs statements that only carry expressions: expression
// statements, return, global, del, raise, assert, print and exec.
type StmtExprsData struct {
	Exprs []ExprID
}
