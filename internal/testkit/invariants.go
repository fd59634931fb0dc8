// Package testkit holds structural checks shared by parser and engine tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"scriptsense/internal/ast"
	"scriptsense/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// module:
//
//	the module span lies within the file content;
//	every statement span is well-formed and points at the same file;
//	every statement lies within its parent (the module or a compound statement).
//
// Only meaningful for prefixes that parsed without errors; recovery may
// leave partial spans behind.
func CheckSpanInvariants(b *ast.Builder, mod ast.Module, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	if len(mod.Body) == 0 {
		return nil
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if mod.Span.End < mod.Span.Start || mod.Span.End > lenContent {
		return fmt.Errorf("module span %v outside content of %d bytes", mod.Span, lenContent)
	}
	c := checker{b: b, file: sf.ID}
	return c.block(mod.Span, mod.Body)
}

type checker struct {
	b    *ast.Builder
	file source.FileID
}

func (c checker) block(parent source.Span, stmts []ast.StmtID) error {
	for _, id := range stmts {
		st := c.b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := st.Span
		if sp.End < sp.Start {
			return fmt.Errorf("%s: inverted span %v", st.Kind, sp)
		}
		if sp.File != c.file {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", st.Kind, sp.File, c.file)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("%s: span %v is outside parent %v", st.Kind, sp, parent)
		}
		for _, body := range c.children(id, st.Kind) {
			if err := c.block(sp, body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c checker) children(id ast.StmtID, kind ast.StmtKind) [][]ast.StmtID {
	s := c.b.Stmts
	switch kind {
	case ast.StmtIf, ast.StmtWhile:
		if d, ok := s.If(id); ok && d != nil {
			return [][]ast.StmtID{d.Body, d.Else}
		}
	case ast.StmtFor:
		if d, ok := s.For(id); ok && d != nil {
			return [][]ast.StmtID{d.Body, d.Else}
		}
	case ast.StmtTry:
		if d, ok := s.Try(id); ok && d != nil {
			out := [][]ast.StmtID{d.Body, d.Else, d.Finally}
			for _, h := range d.Handlers {
				out = append(out, h.Body)
			}
			return out
		}
	case ast.StmtWith:
		if d, ok := s.With(id); ok && d != nil {
			return [][]ast.StmtID{d.Body}
		}
	case ast.StmtFuncDef:
		if d, ok := s.FuncDef(id); ok && d != nil {
			return [][]ast.StmtID{d.Body}
		}
	case ast.StmtClassDef:
		if d, ok := s.ClassDef(id); ok && d != nil {
			return [][]ast.StmtID{d.Body}
		}
	}
	return nil
}
