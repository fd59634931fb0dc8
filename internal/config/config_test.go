package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, FileName)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, `
[modules]
paths = ["lib", "/abs/scripts"]
cache = true
watch = "2s"

[host]
catalog = "host.yaml"

[builtins]
extra = ["mylib.helper"]

[complete]
marker = "__cursor__"
`)
	cfg, err := Load(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{filepath.Join(dir, "lib"), filepath.Clean("/abs/scripts")}
	if !reflect.DeepEqual(cfg.Modules.Paths, want) {
		t.Fatalf("paths = %v, want %v", cfg.Modules.Paths, want)
	}
	if !cfg.Modules.Cache || cfg.Modules.Watch != 2*time.Second {
		t.Fatalf("modules = %+v", cfg.Modules)
	}
	if cfg.Host.Catalog != filepath.Join(dir, "host.yaml") {
		t.Fatalf("catalog = %q", cfg.Host.Catalog)
	}
	if cfg.Complete.Marker != "__cursor__" || len(cfg.Builtins.Extra) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"syntax", "[modules\n", "failed to parse TOML"},
		{"unknown key", "[modules]\nroots = []\n", "unknown keys"},
		{"bad watch", "[modules]\nwatch = \"soon\"\n", "invalid [modules].watch"},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		_, err := Load(write(t, dir, tc.body))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: err = %v, want %q", tc.name, err, tc.want)
		}
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	p := write(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := Find(nested)
	if err != nil || got != p {
		t.Fatalf("Find = %q, %v", got, err)
	}
	cfg, err := Discover("", nested)
	if err != nil || cfg.Path != p {
		t.Fatalf("Discover = %+v, %v", cfg, err)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); !errors.Is(err, ErrNotFound) {
		// a scriptsense.toml above the temp dir would make this test meaningless
		t.Skipf("config found above %s", dir)
	}
	cfg, err := Discover("", dir)
	if err != nil || cfg.Path != "" || len(cfg.Modules.Paths) != 0 {
		t.Fatalf("Discover = %+v, %v", cfg, err)
	}
	if _, err := Discover(filepath.Join(dir, "missing.toml"), dir); err == nil {
		t.Fatalf("explicit missing file must fail")
	}
}
