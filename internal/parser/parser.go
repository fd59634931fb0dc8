package parser

import (
	"slices"

	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/lexer"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Module ast.Module
	// Failed is set when any syntax or lexical error was reported. The
	// statement list is still the best-effort recovery of the input.
	Failed bool
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	failed   bool
}

// ParseFile parses one script from an already constructed lexer.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
	start := p.lx.Peek().Span
	body := p.parseStmts(token.EOF)
	return Result{
		Module: ast.Module{Span: start.Cover(p.lastSpan), Body: body},
		Failed: p.failed,
	}
}

// ParseSource is the one-call entry used by the engine and the module
// index: it registers src as a virtual file, lexes and parses it, and
// collects diagnostics into bag (which may be nil).
func ParseSource(fs *source.FileSet, name string, src []byte, bag *diag.Bag) (*ast.Builder, Result) {
	id := fs.AddVirtual(name, src)
	var rep diag.Reporter
	maxErrors := uint(0)
	if bag != nil {
		rep = diag.BagReporter{Bag: bag}
		maxErrors = uint(bag.Cap()) // #nosec G115 -- bag limits are small
	}
	failures := &failureTracker{next: rep}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: failures})
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(lx, builder, Options{MaxErrors: maxErrors, Reporter: failures})
	res.Failed = res.Failed || failures.failed
	return builder, res
}

// failureTracker records lexical errors even when no bag is attached.
type failureTracker struct {
	next   diag.Reporter
	failed bool
}

func (f *failureTracker) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		f.failed = true
	}
	if f.next != nil {
		f.next.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseStmts parses statements until the stop token (EOF or Dedent) and
// leaves the stop token unconsumed.
func (p *Parser) parseStmts(stop token.Kind) []ast.StmtID {
	var body []ast.StmtID
	stray := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return body
		case stop:
			if stray == 0 {
				return body
			}
			stray--
			p.advance()
			continue
		case token.Newline, token.Semicolon:
			p.advance()
			continue
		case token.Indent:
			p.err(diag.SynUnexpectedToken, "unexpected indent")
			p.advance()
			stray++
			continue
		case token.Dedent:
			// лишний dedent на верхнем уровне после ошибки отступов
			p.advance()
			continue
		}
		ids, ok := p.parseStmt()
		for _, id := range ids {
			if id.IsValid() {
				body = append(body, id)
			}
		}
		if !ok {
			p.resyncLine()
		}
	}
}

// resyncLine skips to the end of the current logical line.
func (p *Parser) resyncLine() {
	for !p.atOr(token.Newline, token.EOF, token.Dedent, token.Indent) {
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+describe(p.lx.Peek()))
	return source.NoStringID, p.getDiagnosticSpan(), false
}

func describe(tok token.Token) string {
	if tok.Text != "" && !tok.IsLayout() {
		return "\"" + tok.Text + "\""
	}
	return tok.Kind.String()
}
