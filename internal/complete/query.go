package complete

import (
	"context"
	"strings"
)

// SplitQuery separates "a.b.se" into expression "a.b" and seed "se". A
// query without an inner dot is a plain name seed.
func SplitQuery(q string) (expr, seed string, member bool) {
	i := strings.LastIndexByte(q, '.')
	if i <= 0 {
		return "", q, false
	}
	return q[:i], q[i+1:], true
}

// Query answers a dotted query: member completion for "expr.seed", name
// completion otherwise. indent positions the capture line for members.
func (e *Engine) Query(ctx context.Context, src, indent, q string) []Item {
	if expr, seed, ok := SplitQuery(q); ok {
		return e.Members(ctx, src, indent, expr, seed)
	}
	return e.Names(ctx, src, q)
}
