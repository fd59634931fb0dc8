package lexer

import (
	"scriptsense/internal/diag"
	"scriptsense/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try3('*', '*', '='), lx.try3('/', '/', '='), lx.try3('<', '<', '='), lx.try3('>', '>', '='):
		return emit(token.AugAssign)
	case lx.try2('+', '='), lx.try2('-', '='), lx.try2('*', '='), lx.try2('/', '='),
		lx.try2('%', '='), lx.try2('&', '='), lx.try2('|', '='), lx.try2('^', '='):
		return emit(token.AugAssign)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('/', '/'):
		return emit(token.SlashSlash)
	case lx.try2('<', '<'):
		return emit(token.Shl)
	case lx.try2('>', '>'):
		return emit(token.Shr)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='), lx.try2('<', '>'):
		return emit(token.BangEq)
	}

	switch lx.cursor.Bump() {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '~':
		return emit(token.Tilde)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '=':
		return emit(token.Assign)
	case '(':
		lx.depth++
		return emit(token.LParen)
	case '[':
		lx.depth++
		return emit(token.LBracket)
	case '{':
		lx.depth++
		return emit(token.LBrace)
	case ')':
		return lx.closeBracket(start, token.RParen)
	case ']':
		return lx.closeBracket(start, token.RBracket)
	case '}':
		return lx.closeBracket(start, token.RBrace)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	case '@':
		return emit(token.At)
	case '`':
		return emit(token.Backtick)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, "unexpected character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) closeBracket(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	if lx.depth == 0 {
		lx.report(diag.LexUnbalancedBracket, sp, "unbalanced "+k.String())
	} else {
		lx.depth--
	}
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekAt(1) != b || lx.cursor.PeekAt(2) != c {
		return false
	}
	lx.cursor.Off += 3
	return true
}

func (lx *Lexer) try2(a, b byte) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekAt(1) != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
