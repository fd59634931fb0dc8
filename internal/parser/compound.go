package parser

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

// parseSuite parses the block after ':'. A suite is either the rest of
// the line or NEWLINE INDENT stmts DEDENT.
func (p *Parser) parseSuite() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':'"); !ok {
		return nil, false
	}
	if !p.at(token.Newline) {
		return p.parseSimpleLine()
	}
	p.advance()
	if !p.at(token.Indent) {
		p.err(diag.SynExpectBlock, "expected an indented block")
		return nil, true
	}
	p.advance()
	body := p.parseStmts(token.Dedent)
	if p.at(token.Dedent) {
		p.advance()
	}
	return body, true
}

func (p *Parser) parseElse() ([]ast.StmtID, bool) {
	if !p.at(token.KwElse) {
		return nil, true
	}
	p.advance()
	return p.parseSuite()
}

// parseIf handles if/elif/else; elif chains become nested ifs in Else.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseTest()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseSuite()
	data := ast.StmtIfData{Cond: cond, Body: body}
	if !ok {
		return p.arenas.Stmts.NewIf(ast.StmtIf, kw.Span.Cover(p.lastSpan), data), false
	}
	if p.at(token.KwElif) {
		nested, ok := p.parseIf()
		data.Else = []ast.StmtID{nested}
		return p.arenas.Stmts.NewIf(ast.StmtIf, kw.Span.Cover(p.lastSpan), data), ok
	}
	data.Else, ok = p.parseElse()
	return p.arenas.Stmts.NewIf(ast.StmtIf, kw.Span.Cover(p.lastSpan), data), ok
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseTest()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtIfData{Cond: cond}
	if data.Body, ok = p.parseSuite(); ok {
		data.Else, ok = p.parseElse()
	}
	return p.arenas.Stmts.NewIf(ast.StmtWhile, kw.Span.Cover(p.lastSpan), data), ok
}

func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance()
	target, ok := p.parseExprList()
	if !ok || !p.checkTarget(target) {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseTestList()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtForData{Target: target, Iter: iter}
	if data.Body, ok = p.parseSuite(); ok {
		data.Else, ok = p.parseElse()
	}
	return p.arenas.Stmts.NewFor(kw.Span.Cover(p.lastSpan), data), ok
}

func (p *Parser) parseTry() (ast.StmtID, bool) {
	kw := p.advance()
	var data ast.StmtTryData
	var ok bool
	if data.Body, ok = p.parseSuite(); !ok {
		return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), false
	}
	for p.at(token.KwExcept) {
		p.advance()
		var h ast.ExceptHandler
		if !p.at(token.Colon) {
			if h.Type, ok = p.parseTest(); !ok {
				return ast.NoStmtID, false
			}
			if p.atOr(token.KwAs, token.Comma) {
				p.advance()
				if h.Name, ok = p.parseTest(); !ok {
					return ast.NoStmtID, false
				}
			}
		}
		h.Body, ok = p.parseSuite()
		data.Handlers = append(data.Handlers, h)
		if !ok {
			return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), false
		}
	}
	if len(data.Handlers) > 0 {
		if data.Else, ok = p.parseElse(); !ok {
			return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), false
		}
	}
	if p.at(token.KwFinally) {
		p.advance()
		data.Finally, ok = p.parseSuite()
	} else if len(data.Handlers) == 0 {
		p.err(diag.SynUnexpectedToken, "expected 'except' or 'finally'")
		ok = false
	}
	return p.arenas.Stmts.NewTry(kw.Span.Cover(p.lastSpan), data), ok
}

func (p *Parser) parseWith() (ast.StmtID, bool) {
	kw := p.advance()
	var data ast.StmtWithData
	for {
		ctx, ok := p.parseTest()
		if !ok {
			return ast.NoStmtID, false
		}
		item := ast.WithItem{Context: ctx}
		if p.at(token.KwAs) {
			p.advance()
			if item.Target, ok = p.parseExpr(); !ok || !p.checkTarget(item.Target) {
				return ast.NoStmtID, false
			}
		}
		data.Items = append(data.Items, item)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	var ok bool
	data.Body, ok = p.parseSuite()
	return p.arenas.Stmts.NewWith(kw.Span.Cover(p.lastSpan), data), ok
}

// parseDecorated: ('@' dotted ['(' args ')'] NEWLINE)* (def | class)
func (p *Parser) parseDecorated() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	var decorators []ast.ExprID
	for p.at(token.At) {
		p.advance()
		dec, ok := p.parseDecoratorExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		decorators = append(decorators, dec)
		if _, ok := p.expect(token.Newline, diag.SynUnexpectedToken, "expected newline after decorator"); !ok {
			return ast.NoStmtID, false
		}
	}
	switch p.lx.Peek().Kind {
	case token.KwDef:
		return p.parseFuncDef(start, decorators)
	case token.KwClass:
		return p.parseClassDef(start, decorators)
	}
	p.err(diag.SynUnexpectedToken, "expected 'def' or 'class' after decorator")
	return ast.NoStmtID, false
}

func (p *Parser) parseDecoratorExpr() (ast.ExprID, bool) {
	name, sp, ok := p.parseIdent()
	if !ok {
		return ast.NoExprID, false
	}
	expr := p.arenas.Exprs.NewName(sp, name)
	for p.at(token.Dot) {
		p.advance()
		attr, attrSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		expr = p.arenas.Exprs.NewAttr(sp.Cover(attrSpan), expr, attr, attrSpan)
	}
	if p.at(token.LParen) {
		return p.parseCall(expr)
	}
	return expr, true
}

func (p *Parser) parseFuncDef(start source.Span, decorators []ast.ExprID) (ast.StmtID, bool) {
	p.advance() // def
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	lparen, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name")
	if !ok {
		return ast.NoStmtID, false
	}
	params, ok := p.parseParams(token.RParen)
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expectClosing(token.RParen, lparen.Span); !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtFuncDefData{Name: name, Params: params, Decorators: decorators}
	data.Body, ok = p.parseSuite()
	return p.arenas.Stmts.NewFuncDef(start.Cover(p.lastSpan), data), ok
}

// parseParams parses a parameter list up to (not including) close.
func (p *Parser) parseParams(close token.Kind) ([]ast.Param, bool) {
	var params []ast.Param
	for !p.at(close) {
		param := ast.Param{Kind: ast.ParamPlain}
		switch {
		case p.at(token.Star):
			p.advance()
			param.Kind = ast.ParamVarArgs
		case p.at(token.StarStar):
			p.advance()
			param.Kind = ast.ParamKwArgs
		}
		name, sp, ok := p.parseIdent()
		if !ok {
			return params, false
		}
		param.Name, param.Span = name, sp
		if param.Kind == ast.ParamPlain && p.at(token.Assign) {
			p.advance()
			if param.Default, ok = p.parseTest(); !ok {
				return params, false
			}
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return params, true
}

func (p *Parser) parseClassDef(start source.Span, decorators []ast.ExprID) (ast.StmtID, bool) {
	p.advance() // class
	name, _, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.StmtClassDefData{Name: name, Decorators: decorators}
	if p.at(token.LParen) {
		lparen := p.advance()
		for !p.at(token.RParen) {
			base, ok := p.parseTest()
			if !ok {
				return ast.NoStmtID, false
			}
			data.Bases = append(data.Bases, base)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expectClosing(token.RParen, lparen.Span); !ok {
			return ast.NoStmtID, false
		}
	}
	data.Body, ok = p.parseSuite()
	return p.arenas.Stmts.NewClassDef(start.Cover(p.lastSpan), data), ok
}
