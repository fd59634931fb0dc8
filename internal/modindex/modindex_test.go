package modindex

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"scriptsense/internal/trace"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "util.py", "import os.path\nfrom java.lang import Math as M\nX = 1\na, b = 1, 2\ndef helper(x):\n    y = x\n    return y\nclass Tool:\n    pass\nif X:\n    DEBUG = True\n")
	writeFile(t, root, "pkg/__init__.py", "VERSION = '1'\n")
	writeFile(t, root, "pkg/io.py", "def read(): pass\n")
	writeFile(t, root, "pkg/sub/__init__.py", "")
	writeFile(t, root, "notpkg/thing.py", "Z = 1\n")
	return root
}

func TestLoadModuleAndPackage(t *testing.T) {
	ix := New(Options{Roots: []string{fixture(t)}})

	got, err := ix.Load(context.Background(), "util")
	if err != nil {
		t.Fatalf("load util: %v", err)
	}
	want := []string{"DEBUG", "M", "Tool", "X", "a", "b", "helper", "os"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("util members = %v, want %v", got, want)
	}

	got, ok := ix.ModuleMembers("pkg")
	if !ok {
		t.Fatalf("pkg should be a module")
	}
	want = []string{"VERSION", "io", "sub"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pkg members = %v, want %v", got, want)
	}
	if got, ok := ix.ModuleMembers("pkg.io"); !ok || !reflect.DeepEqual(got, []string{"read"}) {
		t.Fatalf("pkg.io = %v %v", got, ok)
	}
}

func TestLoadMisses(t *testing.T) {
	ix := New(Options{Roots: []string{fixture(t)}})
	for _, path := range []string{"missing", "notpkg", "notpkg.thing", "", "a..b", ".rel"} {
		if _, err := ix.Load(context.Background(), path); !errors.Is(err, ErrNotModule) {
			t.Fatalf("Load(%q) err = %v, want ErrNotModule", path, err)
		}
	}
	if ix.Cached() != 0 {
		t.Fatalf("misses must not be cached")
	}
}

func TestRootsOrderFirstWins(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, a, "m.py", "FROM_A = 1\n")
	writeFile(t, b, "m.py", "FROM_B = 1\n")
	ix := New(Options{Roots: []string{a, b}})
	got, _ := ix.ModuleMembers("m")
	if !reflect.DeepEqual(got, []string{"FROM_A"}) {
		t.Fatalf("got %v", got)
	}
}

func TestAddRoot(t *testing.T) {
	a, extra := t.TempDir(), t.TempDir()
	writeFile(t, extra, "late.py", "LATE = 1\n")
	ix := New(Options{Roots: []string{a}})
	if _, ok := ix.ModuleMembers("late"); ok {
		t.Fatalf("late should not resolve before its root is added")
	}
	if !ix.AddRoot(extra + string(filepath.Separator)) {
		t.Fatalf("AddRoot reported no change")
	}
	if ix.AddRoot(extra) || ix.AddRoot("") {
		t.Fatalf("duplicate or empty root was added")
	}
	if got := ix.Roots(); !reflect.DeepEqual(got, []string{filepath.Clean(a), filepath.Clean(extra)}) {
		t.Fatalf("roots = %v", got)
	}
	if got, ok := ix.ModuleMembers("late"); !ok || !reflect.DeepEqual(got, []string{"LATE"}) {
		t.Fatalf("late = %v %v", got, ok)
	}
}

func TestClearAllAndStale(t *testing.T) {
	root := fixture(t)
	ix := New(Options{Roots: []string{root}})
	if _, ok := ix.ModuleMembers("util"); !ok {
		t.Fatalf("util should load")
	}
	if ix.Cached() != 1 {
		t.Fatalf("expected 1 cached module, got %d", ix.Cached())
	}
	if _, stale := ix.Stale(); stale {
		t.Fatalf("fresh cache reported stale")
	}
	p := filepath.Join(root, "util.py")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(p, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if f, stale := ix.Stale(); !stale || f != p {
		t.Fatalf("Stale() = %q %v", f, stale)
	}
	ix.ClearAll()
	if ix.Cached() != 0 {
		t.Fatalf("ClearAll left %d modules", ix.Cached())
	}
	writeFile(t, root, "util.py", "NEW = 1\n")
	if got, _ := ix.ModuleMembers("util"); !reflect.DeepEqual(got, []string{"NEW"}) {
		t.Fatalf("reload after clear = %v", got)
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	ix := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ix.Watch(ctx, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch err = %v", err)
	}
	if err := ix.Watch(context.Background(), 0); err == nil {
		t.Fatalf("zero interval must fail")
	}
}

func TestListAndWarm(t *testing.T) {
	root := fixture(t)
	other := t.TempDir()
	writeFile(t, other, "pkgx.py", "")
	ix := New(Options{Roots: []string{root, other, filepath.Join(root, "absent")}})

	got, err := ix.List(context.Background(), "pkg")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"pkg", "pkg.io", "pkg.sub", "pkgx"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}

	if err := ix.Warm(context.Background(), []string{"util", "pkg", "nothing"}); err != nil {
		t.Fatalf("warm: %v", err)
	}
	if ix.Cached() != 2 {
		t.Fatalf("expected 2 warmed modules, got %d", ix.Cached())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dc, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := ContentKey([]byte("X = 1\n"))
	var e DiskEntry
	if ok, err := dc.Get(key, &e); ok || err != nil {
		t.Fatalf("empty cache Get = %v %v", ok, err)
	}
	if err := dc.Put(key, &DiskEntry{Schema: diskSchemaVersion, Members: []string{"X"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := dc.Get(key, &e); !ok || err != nil || !reflect.DeepEqual(e.Members, []string{"X"}) {
		t.Fatalf("Get = %v %v %+v", ok, err, e)
	}
	if err := dc.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if ok, _ := dc.Get(key, &e); ok {
		t.Fatalf("entry survived DropAll")
	}
	var nilCache *DiskCache
	if ok, err := nilCache.Get(key, &e); ok || err != nil || nilCache.Put(key, &e) != nil {
		t.Fatalf("nil cache must be a no-op")
	}
}

func TestIndexUsesDiskCache(t *testing.T) {
	root := t.TempDir()
	src := "REAL = 1\n"
	writeFile(t, root, "m.py", src)
	dc, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// заранее подложенная запись выигрывает у разбора
	if err := dc.Put(ContentKey([]byte(src)), &DiskEntry{Schema: diskSchemaVersion, Members: []string{"FROM_DISK"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	ring := trace.NewRingTracer(8, trace.LevelDetail)
	ix := New(Options{Roots: []string{root}, Disk: dc, Tracer: ring})
	got, _ := ix.ModuleMembers("m")
	if !reflect.DeepEqual(got, []string{"FROM_DISK"}) {
		t.Fatalf("got %v", got)
	}
	if len(ring.Snapshot()) != 2 {
		t.Fatalf("expected module.load span events, got %+v", ring.Snapshot())
	}
}

func TestStatic(t *testing.T) {
	s := NewStatic(map[string][]string{"os": {"sep", "path", "sep"}, "os.path": {"join"}})
	got, ok := s.ModuleMembers("os")
	if !ok || !reflect.DeepEqual(got, []string{"path", "sep"}) {
		t.Fatalf("os = %v %v", got, ok)
	}
	if _, ok := s.ModuleMembers("sys"); ok {
		t.Fatalf("sys should be unknown")
	}
	if got, _ := s.List(context.Background(), "os"); !reflect.DeepEqual(got, []string{"os", "os.path"}) {
		t.Fatalf("List = %v", got)
	}
	var nilStatic *Static
	if _, ok := nilStatic.ModuleMembers("os"); ok {
		t.Fatalf("nil static must know nothing")
	}
}
