package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

type bufCloser struct{ bytes.Buffer }

func (*bufCloser) Close() error { return nil }

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeModule, false},
		{LevelDetail, ScopeModule, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var out bufCloser
	tr := NewStreamTracer(&out, LevelPhase, FormatText)
	root := Begin(tr, ScopeDriver, "names", 0)
	Begin(tr, ScopePass, "parse", root.ID()).End("ok")
	Begin(tr, ScopeModule, "module.load", root.ID()).End("")
	root.WithExtra("prefix", "fo").End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	text := out.String()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), text)
	}
	if strings.Contains(text, "module.load") {
		t.Fatalf("module scope leaked at phase level:\n%s", text)
	}
	if !strings.Contains(lines[3], "prefix=fo") {
		t.Fatalf("extra missing: %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var out bufCloser
	tr := NewStreamTracer(&out, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "ignored", "while", 0)
	_ = tr.Flush()
	if !strings.HasPrefix(out.String(), "{") || !strings.Contains(out.String(), `"kind":"point"`) {
		t.Fatalf("unexpected ndjson: %s", out.String())
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	r.Reset()
	if len(r.Snapshot()) != 0 {
		t.Fatalf("reset kept events")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not stored")
	}
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.WithExtra("k", "v") != s {
		t.Fatalf("nop span should be inert")
	}
}
