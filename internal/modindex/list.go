package modindex

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"scriptsense/internal/trace"
)

// List returns every dotted module path under the search roots that starts
// with prefix. Roots are walked in parallel.
func (ix *Index) List(ctx context.Context, prefix string) ([]string, error) {
	span := trace.Begin(ix.tracer, trace.ScopeModule, "module.list", 0).WithExtra("prefix", prefix)
	roots := ix.Roots()
	found := make([][]string, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, root := range roots {
		g.Go(func() error {
			names, err := walkRoot(gctx, root, prefix)
			if err != nil {
				return err
			}
			found[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("error")
		return nil, err
	}
	var out []string
	for _, names := range found {
		out = append(out, names...)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	span.End("")
	return out, nil
}

func walkRoot(ctx context.Context, root, prefix string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				// отсутствующий корень не ошибка
				return fs.SkipAll
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		if d.IsDir() {
			if !isIdent(d.Name()) || !isFile(filepath.Join(p, packageInit)) {
				return filepath.SkipDir
			}
			if mod := dotted(rel); strings.HasPrefix(mod, prefix) {
				out = append(out, mod)
			}
			return nil
		}
		name := d.Name()
		if name == packageInit || !strings.HasSuffix(name, sourceExt) || !isIdent(strings.TrimSuffix(name, sourceExt)) {
			return nil
		}
		if mod := dotted(strings.TrimSuffix(rel, sourceExt)); strings.HasPrefix(mod, prefix) {
			out = append(out, mod)
		}
		return nil
	})
	return out, err
}

func dotted(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", ".")
}

// Warm loads paths concurrently so that later lookups hit the cache.
// Paths that are not modules are skipped.
func (ix *Index) Warm(ctx context.Context, paths []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, p := range paths {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if _, err := ix.Load(gctx, p); err != nil && !isNotModule(err) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
