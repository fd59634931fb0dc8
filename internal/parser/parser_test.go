package parser

import (
	"fmt"
	"strings"
	"testing"

	"scriptsense/internal/ast"
	"scriptsense/internal/diag"
	"scriptsense/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	b, res := ParseSource(source.NewFileSet(), "test.py", []byte(input), bag)
	return b, res, bag
}

func mustParse(t *testing.T, input string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	b, res, bag := parseSource(t, input)
	if res.Failed {
		t.Fatalf("unexpected parse failure for %q: %s", input, diagnosticsSummary(bag))
	}
	return b, res.Module.Body
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil || bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func kindsOf(b *ast.Builder, body []ast.StmtID) string {
	parts := make([]string, 0, len(body))
	for _, id := range body {
		parts = append(parts, b.Stmts.Get(id).Kind.String())
	}
	return strings.Join(parts, ",")
}

func TestTupleAssignment(t *testing.T) {
	b, body := mustParse(t, "a, b = 1, 2.0\n")
	if len(body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body))
	}
	as, ok := b.Stmts.Assign(body[0])
	if !ok || len(as.Targets) != 1 {
		t.Fatalf("expected a single-target assignment")
	}
	lhs, ok := b.Exprs.Seq(as.Targets[0])
	if !ok || len(lhs.Elems) != 2 {
		t.Fatalf("lhs is not a 2-tuple")
	}
	rhs, ok := b.Exprs.Seq(as.Value)
	if !ok || len(rhs.Elems) != 2 {
		t.Fatalf("rhs is not a 2-tuple")
	}
	if n, _ := b.Exprs.Num(rhs.Elems[1]); n == nil || !n.Float {
		t.Fatalf("second value should be a float literal")
	}
}

func TestChainedAndAugmentedAssignment(t *testing.T) {
	b, body := mustParse(t, "a = b = f(x, y=2)\nc += 1\n")
	if got := kindsOf(b, body); got != "Assign,AugAssign" {
		t.Fatalf("kinds = %s", got)
	}
	as, _ := b.Stmts.Assign(body[0])
	if len(as.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(as.Targets))
	}
	call, ok := b.Exprs.Call(as.Value)
	if !ok || len(call.Args) != 1 || len(call.Keywords) != 1 || b.Str(call.Keywords[0].Name) != "y" {
		t.Fatalf("unexpected call payload %+v", call)
	}
	aug, _ := b.Stmts.AugAssign(body[1])
	if aug.Op != ast.BinAdd {
		t.Fatalf("aug op = %v", aug.Op)
	}
}

func TestFunctionAndClass(t *testing.T) {
	src := `@decorator
class Box(Base, mod.Other):
    size = 3
    def __init__(self, w, h=2, *args, **kw):
        self.w = w
        return self
    @staticmethod
    def make(): pass
`
	b, body := mustParse(t, src)
	cls, ok := b.Stmts.ClassDef(body[0])
	if !ok {
		t.Fatalf("expected class definition")
	}
	if b.Str(cls.Name) != "Box" || len(cls.Bases) != 2 || len(cls.Decorators) != 1 {
		t.Fatalf("class header = %+v", cls)
	}
	if b.DottedName(cls.Bases[1]) != "mod.Other" {
		t.Fatalf("second base = %q", b.DottedName(cls.Bases[1]))
	}
	if got := kindsOf(b, cls.Body); got != "Assign,FunctionDef,FunctionDef" {
		t.Fatalf("class body = %s", got)
	}
	init, _ := b.Stmts.FuncDef(cls.Body[1])
	if len(init.Params) != 5 {
		t.Fatalf("params = %d", len(init.Params))
	}
	if init.Params[2].Default == ast.NoExprID || init.Params[3].Kind != ast.ParamVarArgs || init.Params[4].Kind != ast.ParamKwArgs {
		t.Fatalf("param shapes = %+v", init.Params)
	}
	if got := kindsOf(b, init.Body); got != "Assign,Return" {
		t.Fatalf("init body = %s", got)
	}
	mk, _ := b.Stmts.FuncDef(cls.Body[2])
	if len(mk.Decorators) != 1 || kindsOf(b, mk.Body) != "Pass" {
		t.Fatalf("one-line method = %+v", mk)
	}
}

func TestImports(t *testing.T) {
	b, body := mustParse(t, "import java.util as ju, os\nfrom ..pkg.mod import (a as x, b,)\nfrom m import *\n")
	imp, _ := b.Stmts.Import(body[0])
	if imp.Names[0].Name != "java.util" || b.Str(imp.Names[0].AsName) != "ju" || imp.Names[1].Name != "os" {
		t.Fatalf("import = %+v", imp)
	}
	from, _ := b.Stmts.ImportFrom(body[1])
	if from.Level != 2 || from.Module != "pkg.mod" || len(from.Names) != 2 || b.Str(from.Names[0].AsName) != "x" {
		t.Fatalf("from import = %+v", from)
	}
	star, _ := b.Stmts.ImportFrom(body[2])
	if !star.Star || star.Module != "m" {
		t.Fatalf("star import = %+v", star)
	}
}

func TestControlFlow(t *testing.T) {
	src := `if a:
    x = 1
elif b:
    x = 2
else:
    x = 3
for i, j in pairs:
    pass
while cond: break
try:
    f()
except IOError, e:
    pass
except (A, B) as err:
    pass
finally:
    g()
with open(p) as fh, lock:
    print >>out, fh.read(),
`
	b, body := mustParse(t, src)
	if got := kindsOf(b, body); got != "If,For,While,Try,With" {
		t.Fatalf("kinds = %s", got)
	}
	ifs, _ := b.Stmts.If(body[0])
	if len(ifs.Else) != 1 {
		t.Fatalf("elif should nest into else")
	}
	nested, ok := b.Stmts.If(ifs.Else[0])
	if !ok || len(nested.Else) != 1 {
		t.Fatalf("nested elif = %+v", nested)
	}
	try, _ := b.Stmts.Try(body[3])
	if len(try.Handlers) != 2 || try.Handlers[0].Name == ast.NoExprID || len(try.Finally) != 1 {
		t.Fatalf("try = %+v", try)
	}
	with, _ := b.Stmts.With(body[4])
	if len(with.Items) != 2 || with.Items[0].Target == ast.NoExprID {
		t.Fatalf("with = %+v", with)
	}
	pr, ok := b.Stmts.Exprs(with.Body[0])
	if !ok || len(pr.Exprs) != 2 {
		t.Fatalf("print = %+v", pr)
	}
}

func TestExpressions(t *testing.T) {
	b, body := mustParse(t, "v = [x * 2 for x in xs if x] + {'k': 1}.keys() if not a.b[1:2] else lambda q, r=1: q ** -r\n")
	as, _ := b.Stmts.Assign(body[0])
	cond, ok := b.Exprs.If(as.Value)
	if !ok {
		t.Fatalf("expected a conditional expression, got %v", b.Exprs.Get(as.Value).Kind)
	}
	bin, ok := b.Exprs.Binary(cond.Then)
	if !ok || bin.Op != ast.BinAdd {
		t.Fatalf("then branch = %+v", bin)
	}
	if _, ok := b.Exprs.Comp(bin.Left); !ok {
		t.Fatalf("left operand should be a comprehension")
	}
	if _, ok := b.Exprs.Lambda(cond.Else); !ok {
		t.Fatalf("else branch should be a lambda")
	}
	not, ok := b.Exprs.Unary(cond.Cond)
	if !ok || not.Op != ast.UnaryNot {
		t.Fatalf("condition should be a not")
	}
	sub, ok := b.Exprs.Subscript(not.Operand)
	if !ok {
		t.Fatalf("expected subscript")
	}
	if _, ok := b.Exprs.Slice(sub.Index); !ok {
		t.Fatalf("expected slice index")
	}
}

func TestStringConcatAndComparisonChain(t *testing.T) {
	b, body := mustParse(t, "s = 'a' \"b\"\nok = 1 < x is not None\n")
	as, _ := b.Stmts.Assign(body[0])
	if s, ok := b.Exprs.Str(as.Value); !ok || s.Raw != `'a'"b"` {
		t.Fatalf("string = %+v", s)
	}
	as, _ = b.Stmts.Assign(body[1])
	cmp, ok := b.Exprs.Binary(as.Value)
	if !ok || cmp.Op != ast.BinIsNot {
		t.Fatalf("comparison = %+v", cmp)
	}
}

func TestCaptureAppendedToPrefix(t *testing.T) {
	b, body := mustParse(t, "import os\nclass A:\n    def f(self):\n        pass\n__capture__ = os.path.join('a').upper()")
	if got := kindsOf(b, body); got != "Import,ClassDef,Assign" {
		t.Fatalf("kinds = %s", got)
	}
}

func TestFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"dangling dot", "x = self.\n", diag.SynExpectIdentifier},
		{"missing block", "def f():\n", diag.SynExpectBlock},
		{"bad target", "f() = 1\n", diag.SynBadAssignTarget},
		{"missing colon", "if x\n    pass\n", diag.SynExpectColon},
		{"unclosed call", "f(a, b", diag.SynUnclosedParen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res, bag := parseSource(t, tt.src)
			if !res.Failed {
				t.Fatalf("expected failure")
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("missing %s in %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	b, res, _ := parseSource(t, "a = 1\nb = = 2\nc = 3\n")
	if !res.Failed {
		t.Fatalf("expected failure")
	}
	if got := kindsOf(b, res.Module.Body); got != "Assign,Assign" {
		t.Fatalf("recovered kinds = %s", got)
	}
}
