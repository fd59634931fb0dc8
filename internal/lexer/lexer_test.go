package lexer_test

import (
	"strings"
	"testing"

	"scriptsense/internal/diag"
	"scriptsense/internal/lexer"
	"scriptsense/internal/source"
	"scriptsense/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	bag := diag.NewBag(32)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var toks []token.Token
	for i := 0; i < 1000; i++ {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, bag
		}
	}
	t.Fatalf("lexer did not reach EOF")
	return nil, nil
}

func kinds(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		switch tok.Kind {
		case token.Ident, token.IntLit, token.FloatLit, token.StringLit:
			parts = append(parts, tok.Text)
		default:
			parts = append(parts, tok.Kind.String())
		}
	}
	return strings.Join(parts, " ")
}

func TestLayoutTokens(t *testing.T) {
	src := "class A:\n    def f(self):\n        return 1\n\n    # trailing comment\nx = 2\n"
	toks, bag := lexAll(t, src)
	want := "class A : newline indent def f ( self ) : newline indent return 1 newline dedent dedent x = 2 newline end of input"
	if got := kinds(toks); got != want {
		t.Fatalf("tokens:\n got %s\nwant %s", got, want)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestUnterminatedBlockClosedAtEOF(t *testing.T) {
	toks, _ := lexAll(t, "def f():\n    x = self.")
	want := "def f ( ) : newline indent x = self . newline dedent end of input"
	if got := kinds(toks); got != want {
		t.Fatalf("tokens:\n got %s\nwant %s", got, want)
	}
}

func TestBracketsSuppressNewlines(t *testing.T) {
	toks, _ := lexAll(t, "f(1,\n  2)\n")
	want := "f ( 1 , 2 ) newline end of input"
	if got := kinds(toks); got != want {
		t.Fatalf("tokens:\n got %s\nwant %s", got, want)
	}
}

func TestNumbersAndStrings(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"10L", token.IntLit},
		{"0x1F", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2j", token.FloatLit},
		{"'a'", token.StringLit},
		{`u"b"`, token.StringLit},
		{`r'\d'`, token.StringLit},
		{`"""doc"""`, token.StringLit},
	}
	for _, tt := range tests {
		toks, bag := lexAll(t, tt.src)
		if toks[0].Kind != tt.kind || toks[0].Text != tt.src {
			t.Fatalf("%q lexed as %v %q", tt.src, toks[0].Kind, toks[0].Text)
		}
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics %+v", tt.src, bag.Items())
		}
	}
}

func TestOperators(t *testing.T) {
	toks, _ := lexAll(t, "a **= b // c <> d")
	want := "a augmented assignment b // c != d newline end of input"
	if got := kinds(toks); got != want {
		t.Fatalf("tokens:\n got %s\nwant %s", got, want)
	}
}

func TestDiagnostics(t *testing.T) {
	_, bag := lexAll(t, "s = 'open\nif x:\n        a\n    b\n")
	var codes []diag.Code
	for _, d := range bag.Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.LexUnterminatedString || codes[1] != diag.LexBadIndent {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.py", []byte("a b"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
}
