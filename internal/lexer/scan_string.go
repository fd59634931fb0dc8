package lexer

import (
	"scriptsense/internal/diag"
	"scriptsense/internal/token"
)

// atStringStart reports whether the cursor sits on a quote, optionally
// behind a u/r/b prefix (in any case, at most two letters).
func (lx *Lexer) atStringStart() bool {
	n := lx.prefixLen()
	q := lx.cursor.PeekAt(n)
	return q == '\'' || q == '"'
}

func (lx *Lexer) prefixLen() uint32 {
	var n uint32
	for n < 2 {
		switch lx.cursor.PeekAt(n) {
		case 'u', 'U', 'r', 'R', 'b', 'B':
			n++
		default:
			return n
		}
	}
	return n
}

// scanString scans single-, double- and triple-quoted strings. Text keeps
// the quotes and prefix; the parser unquotes when it needs the value.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	for n := lx.prefixLen(); n > 0; n-- {
		lx.cursor.Bump()
	}
	quote := lx.cursor.Bump()
	triple := lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote
	if triple {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	for {
		if lx.cursor.EOF() {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			// экранированный символ, в том числе кавычка и перевод строки
			lx.cursor.Bump()
			lx.cursor.Bump()
		case b == '\n' && !triple:
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case b == quote:
			lx.cursor.Bump()
			if !triple {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
			}
			if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
			}
		default:
			lx.cursor.Bump()
		}
	}
}
