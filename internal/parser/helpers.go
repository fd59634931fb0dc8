package parser

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && !tok.IsLayout() {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: на EOF и layout-токенах
// указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF || peek.IsLayout() {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect ожидает конкретный токен; иначе репортит и возвращает false.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// expectClosing ожидает закрывающую скобку; ошибка указывает на открывающую.
func (p *Parser) expectClosing(k token.Kind, open source.Span) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.getDiagnosticSpan()
	p.report(closing(k), diag.SevError, sp, "expected '"+k.String()+"'", diag.Note{Span: open, Msg: "opened here"})
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) {
	if sev == diag.SevError {
		p.failed = true
		if p.opts.Enough() {
			return // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, notes)
	}
}

func (p *Parser) span(id ast.ExprID) source.Span {
	if e := p.arenas.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.lastSpan
}

// closing returns the diagnostic code for a missing closing bracket.
func closing(k token.Kind) diag.Code {
	switch k {
	case token.RBracket:
		return diag.SynUnclosedBracket
	case token.RBrace:
		return diag.SynUnclosedBrace
	default:
		return diag.SynUnclosedParen
	}
}
