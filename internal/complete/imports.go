package complete

import (
	"context"
	"fmt"
	"strings"
)

// ModuleLister is implemented by module indexes that can enumerate
// modules, such as modindex.Index.
type ModuleLister interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// Imports completes a dotted module path for "import" statements.
func (e *Engine) Imports(ctx context.Context, prefix string) ([]Item, error) {
	req := e.begin(ctx, "imports")
	defer req.end("")
	lister, ok := e.opts.Modules.(ModuleLister)
	if !ok {
		return nil, nil
	}
	paths, err := lister.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	out := make([]Item, 0, len(paths))
	for _, p := range paths {
		out = append(out, Item{Text: p, Display: p, Kind: KindModule})
	}
	return out, nil
}

// ImportMembers completes "from module import seed". The result is nil
// only when module is unknown.
func (e *Engine) ImportMembers(ctx context.Context, module, seed string) []Item {
	req := e.begin(ctx, "import-members")
	defer req.end("")
	if e.opts.Modules == nil {
		return nil
	}
	members, ok := e.opts.Modules.ModuleMembers(module)
	if !ok {
		req.log.V(1).Info("not a module", "module", module)
		return nil
	}
	out := make([]Item, 0, len(members))
	for _, m := range members {
		if !strings.HasPrefix(m, seed) {
			continue
		}
		it := Item{Text: m, Display: m, Kind: KindVariable, Summary: module}
		if _, sub := e.opts.Modules.ModuleMembers(module + "." + m); sub {
			it.Kind = KindModule
		}
		out = append(out, it)
	}
	return out
}
