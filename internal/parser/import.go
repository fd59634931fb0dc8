package parser

import (
	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

// parseImport: import dotted [as NAME] (',' dotted [as NAME])*
func (p *Parser) parseImport() (ast.StmtID, bool) {
	kw := p.advance()
	var names []ast.Alias
	for {
		alias, ok := p.parseAlias(true)
		if !ok {
			return ast.NoStmtID, false
		}
		names = append(names, alias)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return p.arenas.Stmts.NewImport(kw.Span.Cover(p.lastSpan), names), true
}

// parseImportFrom: from ('.'* dotted | '.'+) import ('*' | '(' aliases ')' | aliases)
func (p *Parser) parseImportFrom() (ast.StmtID, bool) {
	kw := p.advance()
	var data ast.StmtImportFromData
	for p.at(token.Dot) {
		p.advance()
		data.Level++
	}
	if p.at(token.Ident) {
		mod, _, ok := p.parseDottedName()
		if !ok {
			return ast.NoStmtID, false
		}
		data.Module = mod
	} else if data.Level == 0 {
		p.err(diag.SynExpectIdentifier, "expected module name after 'from'")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwImport, diag.SynUnexpectedToken, "expected 'import'"); !ok {
		return ast.NoStmtID, false
	}

	if p.at(token.Star) {
		p.advance()
		data.Star = true
		return p.arenas.Stmts.NewImportFrom(kw.Span.Cover(p.lastSpan), data), true
	}
	paren := p.at(token.LParen)
	var lparen source.Span
	if paren {
		lparen = p.advance().Span
	}
	for {
		alias, ok := p.parseAlias(false)
		if !ok {
			return ast.NoStmtID, false
		}
		data.Names = append(data.Names, alias)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		if paren && p.at(token.RParen) {
			break
		}
	}
	if paren {
		if _, ok := p.expectClosing(token.RParen, lparen); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewImportFrom(kw.Span.Cover(p.lastSpan), data), true
}

func (p *Parser) parseAlias(dotted bool) (ast.Alias, bool) {
	var (
		name string
		sp   source.Span
		ok   bool
	)
	if dotted {
		name, sp, ok = p.parseDottedName()
	} else {
		var id source.StringID
		id, sp, ok = p.parseIdent()
		name = p.arenas.Str(id)
	}
	if !ok {
		return ast.Alias{}, false
	}
	alias := ast.Alias{Name: name, Span: sp}
	if p.at(token.KwAs) {
		p.advance()
		as, asSpan, ok := p.parseIdent()
		if !ok {
			return ast.Alias{}, false
		}
		alias.AsName = as
		alias.Span = sp.Cover(asSpan)
	}
	return alias, true
}
