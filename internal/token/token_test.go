package token_test

import (
	"testing"

	"scriptsense/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	for word, want := range map[string]token.Kind{"def": token.KwDef, "print": token.KwPrint, "yield": token.KwYield} {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v", word, got, ok)
		}
	}
	for _, word := range []string{"None", "True", "self", "Def"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must not be a keyword", word)
		}
	}
}

func TestKindClassifiers(t *testing.T) {
	if !(token.Token{Kind: token.KwClass}).IsKeyword() {
		t.Fatalf("class must be a keyword")
	}
	if (token.Token{Kind: token.Plus}).IsKeyword() {
		t.Fatalf("+ must not be a keyword")
	}
	if !(token.Token{Kind: token.Dedent}).IsLayout() {
		t.Fatalf("dedent is layout")
	}
	if got := token.SlashSlash.String(); got != "//" {
		t.Fatalf("String() = %q", got)
	}
}
