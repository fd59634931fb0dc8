package symbols

import (
	"slices"
	"strings"
	"testing"

	"scriptsense/internal/host"
)

type stubModules map[string][]string

func (m stubModules) ModuleMembers(path string) ([]string, bool) {
	members, ok := m[path]
	return members, ok
}

func testEnv() Env {
	return Env{
		Host: host.NewCatalog(
			host.ClassSpec{
				Name: "ij.IJ",
				Methods: []host.MethodSpec{
					{Name: "getImage", Returns: "ij.ImagePlus", Static: true},
				},
			},
			host.ClassSpec{
				Name:   "ij.ImagePlus",
				Fields: []host.FieldSpec{{Name: "GRAY8", Type: "int", Static: true}},
				Methods: []host.MethodSpec{
					{Name: "getWidth", Returns: "int"},
					{Name: "getTitle", Returns: "java.lang.String"},
				},
			},
		),
		Modules:  stubModules{"os": {"path", "getcwd"}},
		Builtins: host.NewBuiltins(),
	}
}

func TestFindShadowingAndImports(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")
	inner := table.Scopes.New(ScopeFunction, root, "")

	table.Scope(root).Vars["x"] = Instance(IntegralTypeName)
	table.Scope(root).Imports["IJ"] = Static("ij.IJ")
	table.Scope(inner).Vars["x"] = Instance(StringTypeName)

	if got := table.Find(inner, "x"); got != Instance(StringTypeName) {
		t.Fatalf("inner x = %v", got)
	}
	if got := table.Find(root, "x"); got != Instance(IntegralTypeName) {
		t.Fatalf("outer x changed: %v", got)
	}
	if got := table.Find(inner, "IJ"); got != Static("ij.IJ") {
		t.Fatalf("IJ = %v", got)
	}
	if got := table.Find(inner, "nothing"); !got.IsUnknown() {
		t.Fatalf("expected unknown, got %v", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestFindSynthesisesBuiltinClass(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")

	d := table.Find(root, "str")
	if d.Kind != DescClass {
		t.Fatalf("expected class descriptor, got %v", d)
	}
	names := memberNames(table.Members(d))
	if !slices.Contains(names, "join") || !slices.Contains(names, "split") {
		t.Fatalf("str members missing: %v", names)
	}
	before := table.Classes.Len()
	if again := table.Find(root, "str"); again != d {
		t.Fatalf("builtin class not cached: %v vs %v", again, d)
	}
	if table.Classes.Len() != before {
		t.Fatalf("class arena grew on repeated lookup")
	}
	// "len" has no members, so it is not a class
	if got := table.Find(root, "len"); !got.IsUnknown() {
		t.Fatalf("len = %v", got)
	}
}

func TestFindStartsWith(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")
	inner := table.Scopes.New(ScopeFunction, root, "")
	table.Scope(root).Vars["imp"] = Instance("ij.ImagePlus")
	table.Scope(root).Imports["IJ"] = Static("ij.IJ")
	table.Scope(inner).Vars["index"] = Instance(IntegralTypeName)
	table.Scope(inner).Vars[CaptureMarker] = Instance(IntegralTypeName)

	got := table.FindStartsWith(inner, "i")
	for _, want := range []string{"imp", "index", "int", "isinstance"} {
		if !slices.Contains(got, want) {
			t.Fatalf("missing %q in %v", want, got)
		}
	}
	if slices.Contains(got, "IJ") {
		t.Fatalf("prefix match is case sensitive: %v", got)
	}
	if !slices.IsSorted(got) {
		t.Fatalf("not sorted: %v", got)
	}

	typed := table.FindStartsWithTypes(inner, "im")
	if typed["imp"] != "ij.ImagePlus" {
		t.Fatalf("imp type = %q", typed["imp"])
	}
	if tn, ok := typed["id"]; ok {
		t.Fatalf("unexpected id=%q", tn)
	}
	if tn := table.FindStartsWithTypes(inner, "le")["len"]; tn != "" {
		t.Fatalf("builtin type = %q", tn)
	}
}

func TestFindVarsByType(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")
	inner := table.Scopes.New(ScopeFunction, root, "")

	table.Scope(root).Vars["outer_long"] = Instance(IntegralTypeName)
	table.Scope(root).Vars["shadowed"] = Instance(IntegralTypeName)
	table.Scope(root).Vars["title"] = Instance(StringTypeName)
	table.Scope(inner).Vars["ratio"] = Instance(FloatingTypeName)
	table.Scope(inner).Vars["count"] = Instance(IntegralTypeName)
	table.Scope(inner).Vars["shadowed"] = Instance(StringTypeName)
	table.Scope(inner).Vars[CaptureMarker] = Instance(IntegralTypeName)
	table.Scope(inner).Vars[CaptureMarker+"2"] = Instance(FloatingTypeName)

	cases := []struct {
		name     string
		typeName string
		hostType string
		want     []string
	}{
		{"double accepts all numbers", "double", "java.lang.Double", []string{"count", "ratio", "outer_long"}},
		{"int rejects long", "int", "java.lang.Integer", []string{"ratio"}},
		{"long", "long", "java.lang.Long", []string{"count", "ratio", "outer_long"}},
		{"string", "String", "java.lang.String", []string{"shadowed", "title"}},
		{"object takes everything", "Object", "java.lang.Object", []string{"count", "ratio", "shadowed", "outer_long", "title"}},
		{"number takes boxed numerics", "Number", "java.lang.Number", []string{"count", "ratio", "outer_long"}},
		{"nothing", "ij.ImagePlus", "ij.ImagePlus", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := table.FindVarsByType(inner, tc.typeName, tc.hostType)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMembersByVariant(t *testing.T) {
	table := NewTable(Hints{}, testEnv())

	if got := table.Members(Unknown()); len(got) != 0 {
		t.Fatalf("unknown has members: %v", got)
	}
	inst := memberNames(table.Members(Instance("ij.ImagePlus")))
	if !slices.Equal(inst, []string{"getWidth", "getTitle"}) {
		t.Fatalf("instance members = %v", inst)
	}
	statics := memberNames(table.Members(Static("ij.ImagePlus")))
	if !slices.Equal(statics, []string{"GRAY8"}) {
		t.Fatalf("static members = %v", statics)
	}
	mod := memberNames(table.Members(Static("os")))
	if !slices.Equal(mod, []string{"path", "getcwd"}) {
		t.Fatalf("module members = %v", mod)
	}
	// Owner.method expands the method's return type
	ret := memberNames(table.Members(Static("ij.IJ.getImage")))
	if !slices.Equal(ret, []string{"getWidth", "getTitle"}) {
		t.Fatalf("static method members = %v", ret)
	}
	if got := table.Members(Static("no.Such")); len(got) != 0 {
		t.Fatalf("unresolved static has members: %v", got)
	}

	fn := table.Funcs.New(FuncInfo{Name: "f", Return: Instance("ij.ImagePlus")})
	if got := memberNames(table.Members(FunctionDesc(fn))); !slices.Equal(got, inst) {
		t.Fatalf("function members = %v", got)
	}
	bare := table.Funcs.New(FuncInfo{Name: "g"})
	if got := table.Members(FunctionDesc(bare)); len(got) != 0 {
		t.Fatalf("function without return has members: %v", got)
	}
}

func TestClassMembersInheritScriptAndHost(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")
	aScope := table.Scopes.New(ScopeClass, root, "A")
	a := table.Classes.New(ClassInfo{Name: "A", Members: []string{"foo"}, Scope: aScope})
	bScope := table.Scopes.New(ScopeClass, root, "B")
	b := table.Classes.New(ClassInfo{Name: "B", Supers: []string{"A", "ij.ImagePlus"}, Scope: bScope})
	table.Scope(root).Vars["A"] = ClassDesc(a)
	table.Scope(root).Vars["B"] = ClassDesc(b)

	got := memberNames(table.Members(ClassDesc(b)))
	want := []string{"foo", "GRAY8", "getWidth", "getTitle"}
	if !slices.Equal(got, want) {
		t.Fatalf("B members = %v, want %v", got, want)
	}
	if tn := table.TypeName(ClassDesc(b)); tn != "B" {
		t.Fatalf("type name = %q", tn)
	}
	// script instance falls back to the class table
	if got := memberNames(table.Members(Instance("A"))); !slices.Equal(got, []string{"foo"}) {
		t.Fatalf("Instance(A) members = %v", got)
	}
}

func TestMemberType(t *testing.T) {
	table := NewTable(Hints{}, testEnv())

	if d, ok := table.MemberType(Instance("ij.ImagePlus"), "getWidth"); !ok || d != Instance("int") {
		t.Fatalf("getWidth = %v %v", d, ok)
	}
	if d, ok := table.MemberType(Static("ij.ImagePlus"), "GRAY8"); !ok || d != Instance("int") {
		t.Fatalf("GRAY8 = %v %v", d, ok)
	}
	if _, ok := table.MemberType(Unknown(), "x"); ok {
		t.Fatalf("unknown base resolved a member")
	}
	cls := table.Classes.New(ClassInfo{Name: "P"})
	table.Classes.Get(cls).SetAttr("size", Instance(IntegralTypeName))
	if d, ok := table.MemberType(ClassDesc(cls), "size"); !ok || d != Instance(IntegralTypeName) {
		t.Fatalf("attr size = %v %v", d, ok)
	}
}

func TestLastAndDump(t *testing.T) {
	table := NewTable(Hints{}, testEnv())
	root := table.Scopes.New(ScopeModule, NoScopeID, "")
	first := table.Scopes.New(ScopeFunction, root, "")
	second := table.Scopes.New(ScopeClass, root, "K")
	leaf := table.Scopes.New(ScopeFunction, second, "")
	_ = first

	if got := table.Last(root); got != leaf {
		t.Fatalf("Last = %d, want %d", got, leaf)
	}
	if got := table.Last(leaf); got != leaf {
		t.Fatalf("Last(leaf) = %d", got)
	}
	table.Scope(root).Vars["n"] = Instance(IntegralTypeName)
	out := table.DumpString(root)
	if !strings.Contains(out, "var n = instance(long)") || !strings.Contains(out, "class K") {
		t.Fatalf("unexpected dump:\n%s", out)
	}
}

func memberNames(list []Member) []string {
	var out []string
	for _, m := range list {
		out = append(out, m.Name)
	}
	return out
}
