package lexer

import (
	"scriptsense/internal/diag"
	"scriptsense/internal/token"
)

// Поддержка: 0, 123, 0x1F, 0o17, 017, 10L, 1.0, .5, 1e-3, 2j.
// Суффикс L оставляет IntLit; мнимые литералы считаем FloatLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			digits := 0
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
				digits++
			}
			if digits == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.report(diag.LexBadNumber, sp, "expected digits after base prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			lx.eatLongSuffix()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
		}
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		} else {
			// "1e" без цифр: экспоненты нет, 'e' уйдёт в следующий токен
			lx.cursor.Reset(mark)
		}
	}
	switch lx.cursor.Peek() {
	case 'j', 'J':
		lx.cursor.Bump()
		kind = token.FloatLit
	case 'l', 'L':
		if kind == token.IntLit {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatLongSuffix() {
	if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
		lx.cursor.Bump()
	}
}
