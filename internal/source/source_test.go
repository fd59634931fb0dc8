package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 2, End: 20}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 20}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("buf.py", []byte("import os\r\nx = 1\n"))
	f := fs.Get(id)
	if f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual == 0 {
		t.Fatalf("unexpected flags %b", f.Flags)
	}
	start, end := fs.Resolve(Span{File: id, Start: 10, End: 11})
	if start != (LineCol{Line: 2, Col: 1}) || end != (LineCol{Line: 2, Col: 2}) {
		t.Fatalf("Resolve() = %v..%v", start, end)
	}
	if got := f.Line(2); got != "x = 1" {
		t.Fatalf("Line(2) = %q", got)
	}
	if got := string(f.Prefix(1)); got != "import os\n" {
		t.Fatalf("Prefix(1) = %q", got)
	}
}

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("self")
	b := in.Intern("self")
	if a != b || a == NoStringID {
		t.Fatalf("expected a stable non-zero ID, got %d and %d", a, b)
	}
	if s := in.MustLookup(a); s != "self" {
		t.Fatalf("MustLookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("unknown ID must not resolve")
	}
	if in.Len() != 2 {
		t.Fatalf("Len = %d, want 2", in.Len())
	}
}
