package ast

import (
	"scriptsense/internal/source"
)

type Stmts struct {
	Arena       *Arena[Stmt]
	Imports     *Arena[StmtImportData]
	ImportFroms *Arena[StmtImportFromData]
	Assigns     *Arena[StmtAssignData]
	AugAssigns  *Arena[StmtAugAssignData]
	FuncDefs    *Arena[StmtFuncDefData]
	ClassDefs   *Arena[StmtClassDefData]
	Ifs         *Arena[StmtIfData]
	Fors        *Arena[StmtForData]
	Tries       *Arena[StmtTryData]
	Withs       *Arena[StmtWithData]
	ExprLists   *Arena[StmtExprsData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:       NewArena[Stmt](capHint),
		Imports:     NewArena[StmtImportData](small),
		ImportFroms: NewArena[StmtImportFromData](small),
		Assigns:     NewArena[StmtAssignData](capHint),
		AugAssigns:  NewArena[StmtAugAssignData](small),
		FuncDefs:    NewArena[StmtFuncDefData](small),
		ClassDefs:   NewArena[StmtClassDefData](small),
		Ifs:         NewArena[StmtIfData](small),
		Fors:        NewArena[StmtForData](small),
		Tries:       NewArena[StmtTryData](small),
		Withs:       NewArena[StmtWithData](small),
		ExprLists:   NewArena[StmtExprsData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func stmtPayload[T any](s *Stmts, id StmtID, want StmtKind, arena *Arena[T]) (*T, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != want {
		return nil, false
	}
	return arena.Get(uint32(st.Payload)), true
}

// NewBare allocates pass, break and continue.
func (s *Stmts) NewBare(kind StmtKind, span source.Span) StmtID {
	return s.new(kind, span, 0)
}

func (s *Stmts) NewImport(span source.Span, names []Alias) StmtID {
	return s.new(StmtImport, span, s.Imports.Allocate(StmtImportData{Names: names}))
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	return stmtPayload(s, id, StmtImport, s.Imports)
}

func (s *Stmts) NewImportFrom(span source.Span, data StmtImportFromData) StmtID {
	return s.new(StmtImportFrom, span, s.ImportFroms.Allocate(data))
}

func (s *Stmts) ImportFrom(id StmtID) (*StmtImportFromData, bool) {
	return stmtPayload(s, id, StmtImportFrom, s.ImportFroms)
}

func (s *Stmts) NewAssign(span source.Span, targets []ExprID, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Targets: targets, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	return stmtPayload(s, id, StmtAssign, s.Assigns)
}

func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	return s.new(StmtAugAssign, span, s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value}))
}

func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	return stmtPayload(s, id, StmtAugAssign, s.AugAssigns)
}

func (s *Stmts) NewFuncDef(span source.Span, data StmtFuncDefData) StmtID {
	return s.new(StmtFuncDef, span, s.FuncDefs.Allocate(data))
}

func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	return stmtPayload(s, id, StmtFuncDef, s.FuncDefs)
}

func (s *Stmts) NewClassDef(span source.Span, data StmtClassDefData) StmtID {
	return s.new(StmtClassDef, span, s.ClassDefs.Allocate(data))
}

func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	return stmtPayload(s, id, StmtClassDef, s.ClassDefs)
}

// NewIf allocates an if or while statement.
func (s *Stmts) NewIf(kind StmtKind, span source.Span, data StmtIfData) StmtID {
	if kind != StmtIf && kind != StmtWhile {
		panic("ast: NewIf with kind " + kind.String())
	}
	return s.new(kind, span, s.Ifs.Allocate(data))
}

// If returns the payload of an if or while statement.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtIf && st.Kind != StmtWhile) {
		return nil, false
	}
	return s.Ifs.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	return stmtPayload(s, id, StmtFor, s.Fors)
}

func (s *Stmts) NewTry(span source.Span, data StmtTryData) StmtID {
	return s.new(StmtTry, span, s.Tries.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	return stmtPayload(s, id, StmtTry, s.Tries)
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	return stmtPayload(s, id, StmtWith, s.Withs)
}

// NewExprs allocates one of the expression-only statement kinds.
func (s *Stmts) NewExprs(kind StmtKind, span source.Span, exprs []ExprID) StmtID {
	return s.new(kind, span, s.ExprLists.Allocate(StmtExprsData{Exprs: exprs}))
}

// Exprs returns the expressions of an expression-only statement.
func (s *Stmts) Exprs(id StmtID) (*StmtExprsData, bool) {
	st := s.Get(id)
	if st == nil {
		return nil, false
	}
	switch st.Kind {
	case StmtExpr, StmtReturn, StmtGlobal, StmtDel, StmtRaise, StmtAssert, StmtPrint, StmtExec:
		return s.ExprLists.Get(uint32(st.Payload)), true
	}
	return nil, false
}
