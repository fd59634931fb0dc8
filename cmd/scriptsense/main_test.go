package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptsense/internal/diagfmt"
)

const catalogYAML = `classes:
  - name: demo.Box
    constructors:
      - []
      - [{name: size, type: int}]
    methods:
      - {name: getSize, returns: int}
      - {name: setSize, returns: void, params: [{name: size, type: int}]}
`

func fixture(t *testing.T) (dir, script string) {
	t.Helper()
	dir = t.TempDir()
	files := map[string]string{
		"host.yaml":       catalogYAML,
		"helpers.py":      "def shout(s):\n    return s\nGREETING = 'hi'\n",
		"main.py":         "import helpers\nfrom demo import Box\nb = Box()\ncount = 3\nratio = 0.5\n",
		"broken.py":       "x = (\n",
		"lib/__init__.py": "",
	}
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir, filepath.Join(dir, "main.py")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNamesCommand(t *testing.T) {
	dir, script := fixture(t)
	out, err := run(t, "--catalog", filepath.Join(dir, "host.yaml"), "names", script, "--prefix", "Bo")
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	for _, want := range []string{"Box()", "Box(int size)", "constructor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("names output misses %q:\n%s", want, out)
		}
	}
}

func TestMembersCommandJSON(t *testing.T) {
	dir, script := fixture(t)
	out, err := run(t, "--catalog", filepath.Join(dir, "host.yaml"), "--format", "json",
		"members", script, "--expr", "b", "--seed", "set")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	var items []itemJSON
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(items) != 1 || items[0].Display != "setSize(int size)" || items[0].Kind != "method" {
		t.Fatalf("items = %+v", items)
	}
}

func TestMembersOfSiblingModule(t *testing.T) {
	_, script := fixture(t)
	out, err := run(t, "members", script, "--expr", "helpers")
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if !strings.Contains(out, "GREETING") || !strings.Contains(out, "shout") {
		t.Fatalf("sibling module members missing:\n%s", out)
	}
}

func TestParamsCommand(t *testing.T) {
	_, script := fixture(t)
	out, err := run(t, "params", script, "--type", "double")
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if !strings.Contains(out, "count") || !strings.Contains(out, "ratio") {
		t.Fatalf("params output:\n%s", out)
	}
	if _, err := run(t, "params", script); err == nil {
		t.Fatalf("params without a type must fail")
	}
}

func TestScopeCommandWithLine(t *testing.T) {
	_, script := fixture(t)
	out, err := run(t, "scope", script, "--line", "1")
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	if !strings.Contains(out, "import helpers") || strings.Contains(out, "var count") {
		t.Fatalf("scope output:\n%s", out)
	}
	dir := filepath.Dir(script)
	out, err = run(t, "scope", filepath.Join(dir, "broken.py"))
	if err != nil {
		t.Fatalf("scope broken: %v", err)
	}
	if !strings.Contains(out, "does not parse") {
		t.Fatalf("broken scope output:\n%s", out)
	}
}

func TestScopeCommandJSONDiagnostics(t *testing.T) {
	dir, _ := fixture(t)
	broken := filepath.Join(dir, "broken.py")
	out, err := run(t, "--format", "json", "scope", broken)
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	var report diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if report.Count == 0 {
		t.Fatalf("expected diagnostics for broken script:\n%s", out)
	}
	if got := report.Diagnostics[0].Location.File; got != broken {
		t.Fatalf("diagnostic file = %q, want %q", got, broken)
	}
}

func TestModulesCommand(t *testing.T) {
	dir, _ := fixture(t)
	out, err := run(t, "--path", dir, "modules", "--prefix", "he")
	if err != nil {
		t.Fatalf("modules: %v", err)
	}
	if strings.TrimSpace(out) == "" || !strings.Contains(out, "helpers") {
		t.Fatalf("modules output:\n%s", out)
	}
	out, err = run(t, "--path", dir, "modules", "--members", "helpers", "--seed", "sh")
	if err != nil || !strings.Contains(out, "shout") || strings.Contains(out, "GREETING") {
		t.Fatalf("module members: %v\n%s", err, out)
	}
	if _, err := run(t, "--path", dir, "modules", "--members", "nothere"); err == nil {
		t.Fatalf("unknown module must fail")
	}
}

func TestVersionAndBadFlags(t *testing.T) {
	out, err := run(t, "version", "--format", "json")
	if err != nil || !strings.Contains(out, `"tool": "scriptsense"`) {
		t.Fatalf("version: %v\n%s", err, out)
	}
	_, script := fixture(t)
	if _, err := run(t, "--format", "yaml", "names", script); err == nil {
		t.Fatalf("unknown output format must fail")
	}
	if _, err := run(t, "--log-level", "loud", "names", script); err == nil {
		t.Fatalf("unknown log level must fail")
	}
}

func TestMemProfileFlag(t *testing.T) {
	dir, script := fixture(t)
	out := filepath.Join(dir, "mem.pprof")
	if _, err := run(t, "--mem-profile", out, "names", script); err != nil {
		t.Fatalf("names: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("heap profile not written: %v", err)
	}
}
