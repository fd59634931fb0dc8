package lexer

import (
	"scriptsense/internal/diag"
	"scriptsense/internal/token"
)

// layout measures the indentation of the next non-blank line and queues
// Indent or Dedent tokens. Blank and comment-only lines do not count.
func (lx *Lexer) layout() (token.Token, bool) {
	for {
		start := lx.cursor.Mark()
		var width uint32
	measure:
		for {
			switch lx.cursor.Peek() {
			case ' ':
				width++
			case '\t':
				width = (width/lx.opts.TabWidth + 1) * lx.opts.TabWidth
			case '\f':
				width = 0
			default:
				break measure
			}
			lx.cursor.Bump()
		}

		switch ch := lx.cursor.Peek(); {
		case lx.cursor.EOF():
			lx.bol = false
			return token.Token{}, false
		case ch == '#':
			lx.skipComment()
			if lx.cursor.Eat('\n') {
				continue
			}
			lx.bol = false
			return token.Token{}, false
		case ch == '\n':
			lx.cursor.Bump()
			continue
		}

		lx.bol = false
		top := lx.indents[len(lx.indents)-1]
		switch {
		case width > top:
			lx.indents = append(lx.indents, width)
			return token.Token{Kind: token.Indent, Span: lx.cursor.SpanFrom(start)}, true
		case width < top:
			sp := lx.emptySpan()
			for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp})
			}
			if lx.indents[len(lx.indents)-1] != width {
				lx.report(diag.LexBadIndent, lx.cursor.SpanFrom(start), "unindent does not match any outer indentation level")
			}
			tok := lx.queue[0]
			lx.queue = lx.queue[1:]
			return tok, true
		}
		return token.Token{}, false
	}
}

// skipBlanks skips spaces, comments and backslash continuations within a line.
func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f', '\r':
			lx.cursor.Bump()
		case '#':
			lx.skipComment()
		case '\\':
			if lx.cursor.PeekAt(1) != '\n' {
				return
			}
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
