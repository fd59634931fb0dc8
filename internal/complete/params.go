package complete

import (
	"context"
	"fmt"
)

// ParameterChoices offers the variables visible at the end of src that can
// be passed for a parameter declared as typeName (host type hostType).
// The nearest scope ranks highest.
func (e *Engine) ParameterChoices(ctx context.Context, src, typeName, hostType string) []Item {
	req := e.begin(ctx, "params")
	a := e.analyze(req, src)

	q := req.timer.Begin("query")
	names := a.Table.FindVarsByType(a.Last, typeName, hostType)
	out := make([]Item, 0, len(names))
	for i, name := range names {
		out = append(out, Item{
			Text:    name,
			Display: name,
			Kind:    KindVariable,
			Detail:  a.Table.TypeName(a.Table.Find(a.Last, name)),
			Score:   len(names) - i,
		})
	}
	req.timer.End(q, fmt.Sprintf("%d items", len(out)))
	req.end("")
	return out
}
