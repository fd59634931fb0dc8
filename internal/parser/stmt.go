package parser

import (
	"strings"

	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

// parseStmt parses one compound statement or one line of simple statements.
func (p *Parser) parseStmt() ([]ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwIf:
		id, ok := p.parseIf()
		return []ast.StmtID{id}, ok
	case token.KwWhile:
		id, ok := p.parseWhile()
		return []ast.StmtID{id}, ok
	case token.KwFor:
		id, ok := p.parseFor()
		return []ast.StmtID{id}, ok
	case token.KwTry:
		id, ok := p.parseTry()
		return []ast.StmtID{id}, ok
	case token.KwWith:
		id, ok := p.parseWith()
		return []ast.StmtID{id}, ok
	case token.KwDef, token.KwClass, token.At:
		id, ok := p.parseDecorated()
		return []ast.StmtID{id}, ok
	}
	return p.parseSimpleLine()
}

// parseSimpleLine: small (';' small)* [';'] NEWLINE
func (p *Parser) parseSimpleLine() ([]ast.StmtID, bool) {
	var out []ast.StmtID
	for {
		id, ok := p.parseSmallStmt()
		if id.IsValid() {
			out = append(out, id)
		}
		if !ok {
			return out, false
		}
		if !p.at(token.Semicolon) {
			break
		}
		p.advance()
		if p.atOr(token.Newline, token.EOF) {
			break
		}
	}
	if p.at(token.EOF) || p.at(token.Dedent) {
		return out, true
	}
	if _, ok := p.expect(token.Newline, diag.SynUnexpectedToken, "unexpected "+describe(p.lx.Peek())); !ok {
		return out, false
	}
	return out, true
}

func (p *Parser) parseSmallStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwPass:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtPass, tok.Span), true
	case token.KwBreak:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtBreak, tok.Span), true
	case token.KwContinue:
		p.advance()
		return p.arenas.Stmts.NewBare(ast.StmtContinue, tok.Span), true
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	case token.KwReturn:
		return p.parseKeywordExprs(ast.StmtReturn)
	case token.KwRaise:
		return p.parseKeywordExprs(ast.StmtRaise)
	case token.KwDel:
		return p.parseKeywordExprs(ast.StmtDel)
	case token.KwAssert:
		return p.parseKeywordExprs(ast.StmtAssert)
	case token.KwGlobal:
		return p.parseGlobal()
	case token.KwPrint:
		return p.parsePrint()
	case token.KwExec:
		return p.parseExec()
	}
	return p.parseExprStmt()
}

func atLineEnd(k token.Kind) bool {
	switch k {
	case token.Newline, token.Semicolon, token.EOF, token.Dedent:
		return true
	}
	return false
}

// parseKeywordExprs handles "kw [test (',' test)*]". For return the list
// collapses into a single (possibly tuple) value.
func (p *Parser) parseKeywordExprs(kind ast.StmtKind) (ast.StmtID, bool) {
	kw := p.advance()
	var exprs []ast.ExprID
	sp := kw.Span
	if !atLineEnd(p.lx.Peek().Kind) {
		if kind == ast.StmtReturn {
			e, ok := p.parseTestList()
			if !ok {
				return ast.NoStmtID, false
			}
			exprs = append(exprs, e)
		} else {
			for {
				e, ok := p.parseTest()
				if !ok {
					return ast.NoStmtID, false
				}
				exprs = append(exprs, e)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
		}
		sp = sp.Cover(p.lastSpan)
	}
	return p.arenas.Stmts.NewExprs(kind, sp, exprs), true
}

func (p *Parser) parseGlobal() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.ExprID
	for {
		name, sp, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, p.arenas.Exprs.NewName(sp, name))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.arenas.Stmts.NewExprs(ast.StmtGlobal, kw.Span.Cover(p.lastSpan), names), true
}

// parsePrint: print [>> dest ,] [test (',' test)* [',']]
func (p *Parser) parsePrint() (ast.StmtID, bool) {
	kw := p.advance()
	var exprs []ast.ExprID
	if p.at(token.Shr) {
		p.advance()
		dest, ok := p.parseTest()
		if !ok {
			return ast.NoStmtID, false
		}
		exprs = append(exprs, dest)
		if !p.at(token.Comma) {
			return p.arenas.Stmts.NewExprs(ast.StmtPrint, kw.Span.Cover(p.lastSpan), exprs), true
		}
		p.advance()
	}
	for !atLineEnd(p.lx.Peek().Kind) {
		e, ok := p.parseTest()
		if !ok {
			return ast.NoStmtID, false
		}
		exprs = append(exprs, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.arenas.Stmts.NewExprs(ast.StmtPrint, kw.Span.Cover(p.lastSpan), exprs), true
}

// parseExec: exec expr ['in' test [',' test]]
func (p *Parser) parseExec() (ast.StmtID, bool) {
	kw := p.advance()
	code, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	exprs := []ast.ExprID{code}
	if p.at(token.KwIn) {
		p.advance()
		for {
			e, ok := p.parseTest()
			if !ok {
				return ast.NoStmtID, false
			}
			exprs = append(exprs, e)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	return p.arenas.Stmts.NewExprs(ast.StmtExec, kw.Span.Cover(p.lastSpan), exprs), true
}

// parseExprStmt covers expression statements, (chained) assignment and
// augmented assignment.
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	first, ok := p.parseTestListOrYield()
	if !ok {
		return ast.NoStmtID, false
	}
	start := p.span(first)

	switch {
	case p.at(token.AugAssign):
		opTok := p.advance()
		if !p.checkTarget(first) {
			return ast.NoStmtID, false
		}
		value, ok := p.parseTestListOrYield()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAugAssign(start.Cover(p.span(value)), first, augOp(opTok.Text), value), true

	case p.at(token.Assign):
		targets := []ast.ExprID{first}
		var value ast.ExprID
		for p.at(token.Assign) {
			p.advance()
			next, ok := p.parseTestListOrYield()
			if !ok {
				return ast.NoStmtID, false
			}
			targets = append(targets, next)
		}
		value = targets[len(targets)-1]
		targets = targets[:len(targets)-1]
		for _, t := range targets {
			if !p.checkTarget(t) {
				return ast.NoStmtID, false
			}
		}
		return p.arenas.Stmts.NewAssign(start.Cover(p.span(value)), targets, value), true
	}
	return p.arenas.Stmts.NewExprs(ast.StmtExpr, start, []ast.ExprID{first}), true
}

// checkTarget validates an assignment target: names, attributes,
// subscripts and tuple/list displays of those.
func (p *Parser) checkTarget(id ast.ExprID) bool {
	e := p.arenas.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprName, ast.ExprAttr, ast.ExprSubscript:
		return true
	case ast.ExprTuple, ast.ExprList:
		seq, _ := p.arenas.Exprs.Seq(id)
		for _, el := range seq.Elems {
			if !p.checkTarget(el) {
				return false
			}
		}
		return true
	case ast.ExprUnary:
		if u, _ := p.arenas.Exprs.Unary(id); u.Op == ast.UnaryStar {
			return p.checkTarget(u.Operand)
		}
	}
	p.report(diag.SynBadAssignTarget, diag.SevError, e.Span, "cannot assign to "+e.Kind.String())
	return false
}

// parseDottedName: NAME ('.' NAME)*
func (p *Parser) parseDottedName() (string, source.Span, bool) {
	id, sp, ok := p.parseIdent()
	if !ok {
		return "", sp, false
	}
	parts := []string{p.arenas.Str(id)}
	for p.at(token.Dot) {
		p.advance()
		id, _, ok = p.parseIdent()
		if !ok {
			return strings.Join(parts, "."), sp.Cover(p.lastSpan), false
		}
		parts = append(parts, p.arenas.Str(id))
	}
	return strings.Join(parts, "."), sp.Cover(p.lastSpan), true
}
