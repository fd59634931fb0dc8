package parser

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/token"
)

// parseTest: or_test ['if' or_test 'else' test] | lambda
func (p *Parser) parseTest() (ast.ExprID, bool) {
	if p.at(token.KwLambda) {
		return p.parseLambda()
	}
	then, ok := p.parseOrTest()
	if !ok || !p.at(token.KwIf) {
		return then, ok
	}
	p.advance()
	cond, ok := p.parseOrTest()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in conditional expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIf(p.span(then).Cover(p.span(els)), cond, then, els), true
}

func (p *Parser) parseLambda() (ast.ExprID, bool) {
	kw := p.advance()
	params, ok := p.parseParams(token.Colon)
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in lambda"); !ok {
		return ast.NoExprID, false
	}
	body, ok := p.parseTest()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewLambda(kw.Span.Cover(p.span(body)), params, body), true
}

func (p *Parser) parseOrTest() (ast.ExprID, bool) {
	left, ok := p.parseAndTest()
	for ok && p.at(token.KwOr) {
		p.advance()
		var right ast.ExprID
		if right, ok = p.parseAndTest(); ok {
			left = p.arenas.Exprs.NewBinary(p.span(left).Cover(p.span(right)), ast.BinOr, left, right)
		}
	}
	return left, ok
}

func (p *Parser) parseAndTest() (ast.ExprID, bool) {
	left, ok := p.parseNotTest()
	for ok && p.at(token.KwAnd) {
		p.advance()
		var right ast.ExprID
		if right, ok = p.parseNotTest(); ok {
			left = p.arenas.Exprs.NewBinary(p.span(left).Cover(p.span(right)), ast.BinAnd, left, right)
		}
	}
	return left, ok
}

func (p *Parser) parseNotTest() (ast.ExprID, bool) {
	if !p.at(token.KwNot) {
		return p.parseComparison()
	}
	kw := p.advance()
	operand, ok := p.parseNotTest()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(kw.Span.Cover(p.span(operand)), ast.UnaryNot, operand), true
}

// parseComparison folds a comparison chain left to right.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseExpr()
	for ok {
		op, isCmp := p.compareOp()
		if !isCmp {
			break
		}
		var right ast.ExprID
		if right, ok = p.parseExpr(); ok {
			left = p.arenas.Exprs.NewBinary(p.span(left).Cover(p.span(right)), op, left, right)
		}
	}
	return left, ok
}

// compareOp consumes a comparison operator if one is next.
func (p *Parser) compareOp() (ast.BinaryOp, bool) {
	var op ast.BinaryOp
	switch p.lx.Peek().Kind {
	case token.Lt:
		op = ast.BinLt
	case token.LtEq:
		op = ast.BinLtEq
	case token.Gt:
		op = ast.BinGt
	case token.GtEq:
		op = ast.BinGtEq
	case token.EqEq:
		op = ast.BinEq
	case token.BangEq:
		op = ast.BinNotEq
	case token.KwIn:
		op = ast.BinIn
	case token.KwIs:
		p.advance()
		if p.at(token.KwNot) {
			p.advance()
			return ast.BinIsNot, true
		}
		return ast.BinIs, true
	case token.KwNot:
		p.advance()
		if _, ok := p.expect(token.KwIn, diag.SynUnexpectedToken, "expected 'in' after 'not'"); !ok {
			return 0, false
		}
		return ast.BinNotIn, true
	default:
		return 0, false
	}
	p.advance()
	return op, true
}

// parseExpr parses arithmetic and bitwise expressions.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precBitwiseOr)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		prec, op, isBin := binaryPrec(p.lx.Peek().Kind)
		if !isBin || prec < minPrec {
			break
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		left = p.arenas.Exprs.NewBinary(p.span(left).Cover(p.span(right)), op, left, right)
	}
	return left, true
}

// parseFactor: ('+'|'-'|'~') factor | power
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	var op ast.UnaryOp
	switch p.lx.Peek().Kind {
	case token.Minus:
		op = ast.UnaryNeg
	case token.Plus:
		op = ast.UnaryPos
	case token.Tilde:
		op = ast.UnaryInvert
	default:
		return p.parsePower()
	}
	tok := p.advance()
	operand, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewUnary(tok.Span.Cover(p.span(operand)), op, operand), true
}

// parsePower: atom trailer* ['**' factor]
func (p *Parser) parsePower() (ast.ExprID, bool) {
	base, ok := p.parseAtom()
	if !ok {
		return ast.NoExprID, false
	}
	if base, ok = p.parseTrailers(base); !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	p.advance()
	exp, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewBinary(p.span(base).Cover(p.span(exp)), ast.BinPow, base, exp), true
}

// parseTestList parses test (',' test)* [','], a tuple when a comma appears.
func (p *Parser) parseTestList() (ast.ExprID, bool) {
	return p.parseList(p.parseTest, startsTest)
}

// parseExprList is parseTestList for loop targets.
func (p *Parser) parseExprList() (ast.ExprID, bool) {
	return p.parseList(p.parseExpr, startsTest)
}

func (p *Parser) parseList(elem func() (ast.ExprID, bool), more func(token.Kind) bool) (ast.ExprID, bool) {
	first, ok := elem()
	if !ok || !p.at(token.Comma) {
		return first, ok
	}
	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if !more(p.lx.Peek().Kind) {
			break
		}
		e, ok := elem()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, e)
	}
	sp := p.span(first).Cover(p.lastSpan)
	return p.arenas.Exprs.NewSeq(ast.ExprTuple, sp, elems), true
}

func (p *Parser) parseTestListOrYield() (ast.ExprID, bool) {
	if p.at(token.KwYield) {
		return p.parseYield()
	}
	return p.parseTestList()
}

func (p *Parser) parseYield() (ast.ExprID, bool) {
	kw := p.advance()
	if atLineEnd(p.lx.Peek().Kind) || p.atOr(token.RParen, token.Assign) {
		return p.arenas.Exprs.NewYield(kw.Span, ast.NoExprID), true
	}
	value, ok := p.parseTestList()
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewYield(kw.Span.Cover(p.span(value)), value), true
}

// startsTest reports whether k can begin an expression; it lets list
// parsers accept a trailing comma.
func startsTest(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.LParen, token.LBracket, token.LBrace, token.Backtick,
		token.Minus, token.Plus, token.Tilde, token.KwNot, token.KwLambda:
		return true
	}
	return false
}
