package parser

import (
	"strings"

	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

func (p *Parser) parseAtom() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewName(tok.Span, p.arenas.Intern(tok.Text)), true
	case token.IntLit, token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewNum(tok.Span, tok.Text, tok.Kind == token.FloatLit), true
	case token.StringLit:
		return p.parseStrings(), true
	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()
	case token.Backtick:
		p.advance()
		inner, ok := p.parseTestList()
		if !ok {
			return ast.NoExprID, false
		}
		end, ok := p.expect(token.Backtick, diag.SynUnexpectedToken, "expected closing '`'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tok.Span.Cover(end.Span), ast.UnaryRepr, inner), true
	}
	p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
	return ast.NoExprID, false
}

// parseStrings folds adjacent string literals into one node.
func (p *Parser) parseStrings() ast.ExprID {
	first := p.advance()
	sp := first.Span
	if !p.at(token.StringLit) {
		return p.arenas.Exprs.NewStr(sp, first.Text)
	}
	var raw strings.Builder
	raw.WriteString(first.Text)
	for p.at(token.StringLit) {
		tok := p.advance()
		raw.WriteString(tok.Text)
		sp = sp.Cover(tok.Span)
	}
	return p.arenas.Exprs.NewStr(sp, raw.String())
}

// parseParenAtom: '(' [yield | testlist_comp] ')'
func (p *Parser) parseParenAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RParen) {
		end := p.advance()
		return p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(end.Span), nil), true
	}
	if p.at(token.KwYield) {
		y, ok := p.parseYield()
		if !ok {
			return ast.NoExprID, false
		}
		_, ok = p.expectClosing(token.RParen, open.Span)
		return y, ok
	}
	first, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.KwFor) {
		return p.finishComp(open.Span, ast.CompGen, first, ast.NoExprID, token.RParen)
	}
	if !p.at(token.Comma) {
		_, ok = p.expectClosing(token.RParen, open.Span)
		return first, ok
	}
	return p.finishSeq(open.Span, ast.ExprTuple, first, token.RParen)
}

// parseListAtom: '[' [listmaker] ']'
func (p *Parser) parseListAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBracket) {
		end := p.advance()
		return p.arenas.Exprs.NewSeq(ast.ExprList, open.Span.Cover(end.Span), nil), true
	}
	first, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.KwFor) {
		return p.finishComp(open.Span, ast.CompList, first, ast.NoExprID, token.RBracket)
	}
	return p.finishSeq(open.Span, ast.ExprList, first, token.RBracket)
}

// parseBraceAtom: '{' [dict | set | comprehension] '}'
func (p *Parser) parseBraceAtom() (ast.ExprID, bool) {
	open := p.advance()
	if p.at(token.RBrace) {
		end := p.advance()
		return p.arenas.Exprs.NewDict(open.Span.Cover(end.Span), nil, nil), true
	}
	first, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Colon) {
		if p.at(token.KwFor) {
			return p.finishComp(open.Span, ast.CompSet, first, ast.NoExprID, token.RBrace)
		}
		return p.finishSeq(open.Span, ast.ExprSet, first, token.RBrace)
	}
	p.advance()
	value, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.KwFor) {
		return p.finishComp(open.Span, ast.CompDict, first, value, token.RBrace)
	}
	keys, values := []ast.ExprID{first}, []ast.ExprID{value}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RBrace) {
			break
		}
		k, ok := p.parseTest()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in dict display"); !ok {
			return ast.NoExprID, false
		}
		v, ok := p.parseTest()
		if !ok {
			return ast.NoExprID, false
		}
		keys, values = append(keys, k), append(values, v)
	}
	end, ok := p.expectClosing(token.RBrace, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(open.Span.Cover(end.Span), keys, values), true
}

// finishSeq parses the remaining ", elem" items of a display up to close.
func (p *Parser) finishSeq(start source.Span, kind ast.ExprKind, first ast.ExprID, close token.Kind) (ast.ExprID, bool) {
	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(close) {
			break
		}
		e, ok := p.parseTest()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
	}
	end, ok := p.expectClosing(close, start)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSeq(kind, start.Cover(end.Span), elems), true
}

// finishComp parses the for/if clauses of a comprehension and the closing bracket.
func (p *Parser) finishComp(start source.Span, form ast.CompForm, elt, value ast.ExprID, close token.Kind) (ast.ExprID, bool) {
	data := ast.ExprCompData{Form: form, Elt: elt, Value: value}
	for p.at(token.KwFor) {
		p.advance()
		target, ok := p.parseExprList()
		if !ok || !p.checkTarget(target) {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in'"); !ok {
			return ast.NoExprID, false
		}
		iter, ok := p.parseOrTest()
		if !ok {
			return ast.NoExprID, false
		}
		clause := ast.CompClause{Target: target, Iter: iter}
		for p.at(token.KwIf) {
			p.advance()
			cond, ok := p.parseOrTest()
			if !ok {
				return ast.NoExprID, false
			}
			clause.Ifs = append(clause.Ifs, cond)
		}
		data.Clauses = append(data.Clauses, clause)
	}
	end, ok := p.expectClosing(close, start)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewComp(start.Cover(end.Span), data), true
}

// parseTrailers: ( '(' args ')' | '[' subscripts ']' | '.' NAME )*
func (p *Parser) parseTrailers(expr ast.ExprID) (ast.ExprID, bool) {
	for {
		var ok bool
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr, ok = p.parseCall(expr)
		case token.LBracket:
			expr, ok = p.parseSubscript(expr)
		case token.Dot:
			p.advance()
			var (
				name source.StringID
				sp   source.Span
			)
			if name, sp, ok = p.parseIdent(); ok {
				expr = p.arenas.Exprs.NewAttr(p.span(expr).Cover(sp), expr, name, sp)
			}
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCall(fn ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	var (
		args []ast.ExprID
		kws  []ast.Keyword
	)
	for !p.at(token.RParen) {
		switch {
		case p.atOr(token.Star, token.StarStar):
			star := p.advance()
			op := ast.UnaryStar
			if star.Kind == token.StarStar {
				op = ast.UnaryDStar
			}
			v, ok := p.parseTest()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, p.arenas.Exprs.NewUnary(star.Span.Cover(p.span(v)), op, v))
		default:
			arg, ok := p.parseTest()
			if !ok {
				return ast.NoExprID, false
			}
			if p.at(token.Assign) {
				name, isName := p.arenas.Exprs.Name(arg)
				if !isName {
					p.err(diag.SynBadAssignTarget, "keyword argument must be a name")
					return ast.NoExprID, false
				}
				p.advance()
				v, ok := p.parseTest()
				if !ok {
					return ast.NoExprID, false
				}
				kws = append(kws, ast.Keyword{Name: name.Name, Value: v})
				break
			}
			if p.at(token.KwFor) && len(args) == 0 && len(kws) == 0 {
				gen, ok := p.finishComp(open.Span, ast.CompGen, arg, ast.NoExprID, token.RParen)
				if !ok {
					return ast.NoExprID, false
				}
				return p.arenas.Exprs.NewCall(p.span(fn).Cover(p.lastSpan), fn, []ast.ExprID{gen}, nil), true
			}
			args = append(args, arg)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	end, ok := p.expectClosing(token.RParen, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(p.span(fn).Cover(end.Span), fn, args, kws), true
}

func (p *Parser) parseSubscript(target ast.ExprID) (ast.ExprID, bool) {
	open := p.advance()
	first, ok := p.parseSliceItem()
	if !ok {
		return ast.NoExprID, false
	}
	index := first
	if p.at(token.Comma) {
		elems := []ast.ExprID{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RBracket) {
				break
			}
			e, ok := p.parseSliceItem()
			if !ok {
				return ast.NoExprID, false
			}
			elems = append(elems, e)
		}
		index = p.arenas.Exprs.NewSeq(ast.ExprTuple, open.Span.Cover(p.lastSpan), elems)
	}
	end, ok := p.expectClosing(token.RBracket, open.Span)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewSubscript(p.span(target).Cover(end.Span), target, index), true
}

// parseSliceItem: test | [test] ':' [test] [':' [test]]
func (p *Parser) parseSliceItem() (ast.ExprID, bool) {
	start := p.lx.Peek().Span
	var lo ast.ExprID
	if !p.at(token.Colon) {
		var ok bool
		if lo, ok = p.parseTest(); !ok || !p.at(token.Colon) {
			return lo, ok
		}
	}
	p.advance()
	var hi, step ast.ExprID
	var ok bool
	if startsTest(p.lx.Peek().Kind) {
		if hi, ok = p.parseTest(); !ok {
			return ast.NoExprID, false
		}
	}
	if p.at(token.Colon) {
		p.advance()
		if startsTest(p.lx.Peek().Kind) {
			if step, ok = p.parseTest(); !ok {
				return ast.NoExprID, false
			}
		}
	}
	return p.arenas.Exprs.NewSlice(start.Cover(p.lastSpan), lo, hi, step), true
}
