package lexer

import (
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

// Lexer turns script text into tokens with explicit block layout.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	queue   []token.Token // готовые токены (Indent/Dedent пачкой)
	indents []uint32      // стек отступов, indents[0] == 0
	depth   int           // вложенность скобок; внутри скобок перевод строки не значим
	bol     bool          // курсор стоит в начале логической строки
	last    token.Kind
	done    bool
}

func New(file *source.File, opts Options) *Lexer {
	if opts.TabWidth == 0 {
		opts.TabWidth = 8
	}
	return &Lexer{
		file:    file,
		cursor:  NewCursor(file),
		opts:    opts,
		indents: []uint32{0},
		bol:     true,
		last:    token.Newline,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	tok := lx.next()
	lx.last = tok.Kind
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if len(lx.queue) == 0 {
		lx.queue = append(lx.queue, lx.next())
	}
	return lx.queue[0]
}

func (lx *Lexer) next() token.Token {
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		lx.queue = lx.queue[1:]
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	for {
		if lx.bol && lx.depth == 0 {
			if tok, ok := lx.layout(); ok {
				return tok
			}
		}
		lx.skipBlanks()

		if lx.cursor.EOF() {
			return lx.finish()
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '\n':
			sp := lx.emptySpan()
			lx.cursor.Bump()
			sp.End = lx.cursor.Off
			if lx.depth > 0 {
				continue
			}
			lx.bol = true
			return token.Token{Kind: token.Newline, Span: sp, Text: "\n"}
		case lx.atStringStart():
			return lx.scanString()
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			return lx.scanIdentOrKeyword()
		case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
			return lx.scanNumber()
		default:
			return lx.scanOperatorOrPunct()
		}
	}
}

// finish closes the last logical line and every open block.
func (lx *Lexer) finish() token.Token {
	lx.done = true
	sp := lx.emptySpan()
	if lx.last != token.Newline && lx.last != token.Indent && lx.last != token.Dedent {
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: sp})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.queue = append(lx.queue, token.Token{Kind: token.EOF, Span: sp})
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
