package complete

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"scriptsense/internal/host"
	"scriptsense/internal/symbols"
)

// Names completes an identifier prefix against the names visible at the
// end of src. Classes add constructor items: script classes one with the
// __init__ parameters, host classes one per reflected constructor.
func (e *Engine) Names(ctx context.Context, src, prefix string) []Item {
	req := e.begin(ctx, "names")
	a := e.analyze(req, src)

	q := req.timer.Begin("query")
	found := a.Table.FindStartsWithTypes(a.Last, prefix)
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	imports, vars := a.Table.Visible(a.Last)
	var out []Item
	for _, name := range names {
		_, isVar := vars[name]
		_, isImport := imports[name]
		if !isVar && !isImport {
			out = append(out, Item{Text: name, Display: name, Kind: KindBuiltin})
			continue
		}
		out = append(out, e.nameItems(a.Table, a.Last, name)...)
	}
	req.timer.End(q, fmt.Sprintf("%d items", len(out)))
	req.end("")
	return out
}

func (e *Engine) nameItems(t *symbols.Table, scope symbols.ScopeID, name string) []Item {
	d := t.Find(scope, name)
	it := Item{Text: name, Display: name, Kind: KindVariable, Detail: t.TypeName(d)}
	switch d.Kind {
	case symbols.DescFunction:
		it.Kind = KindFunction
		it.Detail = t.Describe(d)
	case symbols.DescClass:
		cls := t.Class(d)
		if cls != nil && cls.Name != name {
			// переменная, которой присвоен экземпляр скриптового класса
			it.Detail = cls.Name
			return []Item{it}
		}
		it.Kind = KindClass
		it.Detail = t.Describe(d)
		if cls == nil || cls.Placeholder {
			return []Item{it}
		}
		ctor := Item{
			Text:    name + "(",
			Display: name + "(" + strings.Join(cls.CtorParams, ", ") + ")",
			Kind:    KindConstructor,
			Summary: cls.Name,
		}
		return []Item{it, ctor}
	case symbols.DescStatic:
		if t.IsModule(d.Name) {
			it.Kind = KindModule
			it.Summary = d.Name
			return []Item{it}
		}
		if cls := host.LookupQuiet(e.opts.Host, d.Name); cls != nil {
			it.Kind = KindClass
			it.Summary = d.Name
			out := []Item{it}
			for _, params := range cls.Constructors {
				out = append(out, Item{
					Text:    name + "(",
					Display: name + "(" + formatParams(params) + ")",
					Kind:    KindConstructor,
					Summary: d.Name,
				})
			}
			return out
		}
	}
	return []Item{it}
}
