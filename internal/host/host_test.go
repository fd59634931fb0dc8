package host

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCatalog = `classes:
  - name: ij.ImagePlus
    supers: [ij.Base]
    constructors:
      - [{name: title, type: java.lang.String}]
      - []
    fields:
      - {name: GRAY8, type: int, static: true}
    methods:
      - {name: getProcessor, returns: ij.process.ImageProcessor}
      - {name: getTitle, returns: java.lang.String}
  - name: ij.Base
    methods:
      - {name: getID, returns: int}
      - {name: getTitle, returns: java.lang.String}
  - name: ij.process.ImageProcessor
    methods:
      - name: setf
        returns: void
        params: [{name: x, type: int}, {name: v, type: float}]
`

func TestParseCatalogFlattensSupers(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	cls, err := cat.Lookup("ij.ImagePlus")
	require.NoError(t, err)
	require.Equal(t, []string{"ij.Base"}, cls.Supers)
	require.Len(t, cls.Constructors, 2)

	var names []string
	for _, m := range cls.Instance() {
		names = append(names, m.Name)
	}
	// getTitle is declared twice; the subclass wins
	require.Equal(t, []string{"getProcessor", "getTitle", "getID"}, names)

	statics := cls.Statics()
	require.Len(t, statics, 1)
	require.Equal(t, "GRAY8", statics[0].Name)
	require.True(t, statics[0].Field)

	m, ok := cls.Method("getID")
	require.True(t, ok)
	require.Equal(t, "ij.Base", m.DeclaringType)
	require.Equal(t, "int", m.ValueType)
}

func TestLookupMissingClass(t *testing.T) {
	cat := NewCatalog()
	_, err := cat.Lookup("nope.Missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrClassNotFound))
	require.Nil(t, LookupQuiet(cat, "nope.Missing"))
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "host.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, []string{"ij.Base", "ij.ImagePlus", "ij.process.ImageProcessor"}, cat.Names())

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseCatalogRejectsNamelessClass(t *testing.T) {
	_, err := ParseCatalog([]byte("classes:\n  - supers: [a.B]\n"))
	require.Error(t, err)
}

func TestCatalogCycleTerminates(t *testing.T) {
	cat := NewCatalog(
		ClassSpec{Name: "a.A", Supers: []string{"a.B"}, Methods: []MethodSpec{{Name: "fa"}}},
		ClassSpec{Name: "a.B", Supers: []string{"a.A"}, Methods: []MethodSpec{{Name: "fb"}}},
	)
	cls, err := cat.Lookup("a.A")
	require.NoError(t, err)
	require.Len(t, cls.Members, 2)
}

func TestReturnTypesDistinct(t *testing.T) {
	cls := &Class{Members: []Member{
		{Name: "get", ValueType: "a.X"},
		{Name: "get", ValueType: "a.X", Params: []Param{{Name: "i", Type: "int"}}},
		{Name: "get", ValueType: "a.Y"},
		{Name: "get", Field: true, ValueType: "a.Z"},
	}}
	require.Equal(t, []string{"a.X", "a.Y"}, cls.ReturnTypes("get"))
}

func TestNumericCompatible(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"long", "long", true},
		{"long", "double", true},
		{"long", "java.lang.Long", true},
		{"long", "int", false},
		{"double", "int", true},
		{"double", "byte", true},
		{"int", "java.lang.String", false},
		{"java.lang.String", "int", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NumericCompatible(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestAssignableThroughSupers(t *testing.T) {
	cat, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	require.True(t, Assignable(cat, "ij.ImagePlus", "ij.Base"))
	require.True(t, Assignable(cat, "ij.ImagePlus", "java.lang.Object"))
	require.False(t, Assignable(cat, "ij.Base", "ij.ImagePlus"))
	require.False(t, Assignable(nil, "ij.ImagePlus", "ij.Base"))
	require.False(t, Assignable(cat, "", "ij.Base"))
}

func TestAssignableNumericToReference(t *testing.T) {
	for _, to := range []string{"java.lang.Object", "java.lang.Number", "java.lang.Comparable"} {
		require.True(t, Assignable(nil, "long", to), to)
		require.True(t, Assignable(nil, "double", to), to)
	}
	require.False(t, Assignable(nil, "long", "java.lang.String"))
	require.False(t, Assignable(nil, "java.lang.String", "long"))
	require.False(t, Assignable(nil, "long", "int"))
}

func TestBuiltinsEntries(t *testing.T) {
	b := NewBuiltins("mylib.helper", BuiltinPrefix+"len")
	entries := b.Entries()
	require.Contains(t, entries, BuiltinPrefix+"str.join")
	require.Contains(t, entries, BuiltinPrefix+"mylib.helper")

	count := 0
	for _, e := range entries {
		if e == BuiltinPrefix+"len" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestSplitOwner(t *testing.T) {
	owner, member, ok := SplitOwner("ij.IJ.getImage")
	require.True(t, ok)
	require.Equal(t, "ij.IJ", owner)
	require.Equal(t, "getImage", member)

	_, _, ok = SplitOwner("plain")
	require.False(t, ok)
}
