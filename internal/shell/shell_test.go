package shell

import (
	"context"
	"sort"
	"strings"
	"testing"

	"scriptsense/internal/complete"
	"scriptsense/internal/host"
	"scriptsense/internal/modindex"
)

func testSession(seed string) *Session {
	engine := complete.New(complete.Options{
		Host: host.NewCatalog(host.ClassSpec{
			Name:    "java.lang.String",
			Methods: []host.MethodSpec{{Name: "length", Returns: "int"}, {Name: "lower", Returns: "java.lang.String"}},
		}),
		Modules:  modindex.NewStatic(map[string][]string{"os": {"path", "sep"}}),
		Builtins: host.NewBuiltins(),
	})
	return NewSession(context.Background(), engine, seed)
}

func candidates(s *Session, line string) ([]string, int) {
	raw, n := s.Do([]rune(line), len([]rune(line)))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out, n
}

func TestFeedTracksBlocks(t *testing.T) {
	s := testSession("")
	steps := []struct {
		line   string
		prompt string
	}{
		{"x = 1", prompt},
		{"def f(a):", contPrompt},
		{"    return a", contPrompt},
		{"", prompt},
		{"class C:", contPrompt},
		{"    n = 1", contPrompt},
		{"y = 2", prompt},
	}
	for i, st := range steps {
		if _, quit := s.Feed(st.line); quit {
			t.Fatalf("step %d quit unexpectedly", i)
		}
		if got := s.Prompt(); got != st.prompt {
			t.Fatalf("step %d (%q): prompt %q, want %q", i, st.line, got, st.prompt)
		}
	}
	want := "x = 1\ndef f(a):\n    return a\nclass C:\n    n = 1\ny = 2\n"
	if s.Source() != want {
		t.Fatalf("source = %q", s.Source())
	}
}

func TestCommands(t *testing.T) {
	s := testSession("name = 'hi'")
	if out, _ := s.Feed(":type name"); out != "java.lang.String\n" {
		t.Fatalf(":type = %q", out)
	}
	if out, _ := s.Feed(":type nothing"); out != "<unknown>\n" {
		t.Fatalf(":type unknown = %q", out)
	}
	if out, _ := s.Feed(":scope"); !strings.Contains(out, "name") {
		t.Fatalf(":scope = %q", out)
	}
	if out, _ := s.Feed(":bogus"); !strings.Contains(out, "unknown command") {
		t.Fatalf(":bogus = %q", out)
	}
	if out, _ := s.Feed(":reset"); out == "" || s.Source() != "" {
		t.Fatalf(":reset left %q", s.Source())
	}
	if _, quit := s.Feed(":quit"); !quit {
		t.Fatalf(":quit must quit")
	}
}

func TestCompleteNamesAndMembers(t *testing.T) {
	s := testSession("import os\nname = 'hi'\nnumber = 3\n")

	got, n := candidates(s, "x = na")
	if n != 2 || len(got) != 1 || got[0] != "me" {
		t.Fatalf("names: %v %d", got, n)
	}
	got, n = candidates(s, "name.l")
	if n != 1 || strings.Join(got, ",") != "ength,ower" {
		t.Fatalf("members: %v %d", got, n)
	}
	got, n = candidates(s, "os.")
	if n != 0 || strings.Join(got, ",") != "path,sep" {
		t.Fatalf("module members: %v %d", got, n)
	}
}

func TestCompleteInsideBlock(t *testing.T) {
	s := testSession("")
	s.Feed("def f(word):")
	s.Feed("    local = 'x'")
	// locals приходит из встроенных имён
	got, _ := candidates(s, "    loc")
	if strings.Join(got, ",") != "al,als" {
		t.Fatalf("block names: %v", got)
	}
	got, _ = candidates(s, "    local.le")
	if strings.Join(got, ",") != "ngth" {
		t.Fatalf("block members: %v", got)
	}
}
