package modindex

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"scriptsense/internal/ast"
	"scriptsense/internal/parser"
	"scriptsense/internal/source"
)

// TopLevelNames parses src and returns the names a module binds at top
// level: imports, assignments, functions and classes, including those
// nested in control blocks. A module that fails to parse still reports
// what the parser recovered.
func TopLevelNames(name string, src []byte) []string {
	b, res := parser.ParseSource(source.NewFileSet(), name, src, nil)
	var out []string
	collectNames(b, res.Module.Body, &out)
	slices.Sort(out)
	return slices.Compact(out)
}

func collectNames(b *ast.Builder, body []ast.StmtID, out *[]string) {
	for _, id := range body {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		switch stmt.Kind {
		case ast.StmtImport:
			if data, ok := b.Stmts.Import(id); ok && data != nil {
				for _, a := range data.Names {
					if a.AsName != source.NoStringID {
						*out = append(*out, b.Str(a.AsName))
						continue
					}
					head, _, _ := strings.Cut(a.Name, ".")
					*out = append(*out, head)
				}
			}
		case ast.StmtImportFrom:
			if data, ok := b.Stmts.ImportFrom(id); ok && data != nil {
				for _, a := range data.Names {
					if a.AsName != source.NoStringID {
						*out = append(*out, b.Str(a.AsName))
					} else {
						*out = append(*out, a.Name)
					}
				}
			}
		case ast.StmtAssign:
			if data, ok := b.Stmts.Assign(id); ok && data != nil {
				for _, t := range data.Targets {
					targetNames(b, t, out)
				}
			}
		case ast.StmtFuncDef:
			if data, ok := b.Stmts.FuncDef(id); ok && data != nil {
				*out = append(*out, b.Str(data.Name))
			}
		case ast.StmtClassDef:
			if data, ok := b.Stmts.ClassDef(id); ok && data != nil {
				*out = append(*out, b.Str(data.Name))
			}
		case ast.StmtIf, ast.StmtWhile:
			if data, ok := b.Stmts.If(id); ok && data != nil {
				collectNames(b, data.Body, out)
				collectNames(b, data.Else, out)
			}
		case ast.StmtFor:
			if data, ok := b.Stmts.For(id); ok && data != nil {
				targetNames(b, data.Target, out)
				collectNames(b, data.Body, out)
				collectNames(b, data.Else, out)
			}
		case ast.StmtTry:
			if data, ok := b.Stmts.Try(id); ok && data != nil {
				collectNames(b, data.Body, out)
				for _, h := range data.Handlers {
					collectNames(b, h.Body, out)
				}
				collectNames(b, data.Else, out)
				collectNames(b, data.Finally, out)
			}
		case ast.StmtWith:
			if data, ok := b.Stmts.With(id); ok && data != nil {
				collectNames(b, data.Body, out)
			}
		}
	}
}

func targetNames(b *ast.Builder, target ast.ExprID, out *[]string) {
	if name, ok := b.Exprs.Name(target); ok && name != nil {
		*out = append(*out, b.Str(name.Name))
		return
	}
	if seq, ok := b.Exprs.Seq(target); ok && seq != nil {
		for _, e := range seq.Elems {
			targetNames(b, e, out)
		}
	}
}

// submodules lists the modules and packages directly inside dir.
func submodules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			if isIdent(name) && isFile(filepath.Join(dir, name, packageInit)) {
				out = append(out, name)
			}
		case strings.HasSuffix(name, sourceExt) && name != packageInit:
			if mod := strings.TrimSuffix(name, sourceExt); isIdent(mod) {
				out = append(out, mod)
			}
		}
	}
	return out, nil
}
