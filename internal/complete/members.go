package complete

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Members completes "expr." at the end of src. The expression is typed by
// appending indent + marker + " = " + expr to src; members whose name
// contains seed (case-insensitively) are returned, names starting with the
// seed first.
func (e *Engine) Members(ctx context.Context, src, indent, expr, seed string) []Item {
	req := e.begin(ctx, "members")
	a := e.analyze(req, withCapture(src, indent, e.opts.Marker, expr))

	q := req.timer.Begin("query")
	d := a.Table.Find(a.Last, e.opts.Marker)
	if d.IsUnknown() {
		req.log.V(1).Info("expression has no known type", "name", expr)
	}

	fold := cases.Fold()
	want := fold.String(seed)
	type ranked struct {
		item   Item
		folded string
		prefix bool
	}
	var hits []ranked
	for _, m := range a.Table.Members(d) {
		folded := fold.String(m.Name)
		if !strings.Contains(folded, want) {
			continue
		}
		hits = append(hits, ranked{item: memberItem(m), folded: folded, prefix: strings.HasPrefix(folded, want)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].prefix != hits[j].prefix {
			return hits[i].prefix
		}
		if hits[i].folded != hits[j].folded {
			return hits[i].folded < hits[j].folded
		}
		return hits[i].item.Display < hits[j].item.Display
	})

	out := make([]Item, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		// перегрузки с одинаковой сигнатурой из разных суперклассов
		key := h.item.Display + "\x00" + h.item.Detail
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h.item)
	}
	req.timer.End(q, fmt.Sprintf("%d items", len(out)))
	req.end(a.Table.TypeName(d))
	return out
}

// TypeOf reports the type name expr has at the end of src, "" if unknown.
func (e *Engine) TypeOf(ctx context.Context, src, indent, expr string) string {
	req := e.begin(ctx, "type")
	defer req.end("")
	a := e.analyze(req, withCapture(src, indent, e.opts.Marker, expr))
	return a.Table.TypeName(a.Table.Find(a.Last, e.opts.Marker))
}
