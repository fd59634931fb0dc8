package infer

import (
	"strings"

	"scriptsense/internal/ast"
)

// sysPathAppend matches sys.path.append('<dir>') with a single string
// literal argument and returns the directory.
func (w *Walker) sysPathAppend(id ast.ExprID) (string, bool) {
	call, ok := w.b.Exprs.Call(id)
	if !ok || call == nil || len(call.Args) != 1 || len(call.Keywords) != 0 {
		return "", false
	}
	if w.b.DottedName(call.Fn) != "sys.path.append" {
		return "", false
	}
	lit, ok := w.b.Exprs.Str(call.Args[0])
	if !ok || lit == nil {
		return "", false
	}
	return stringValue(lit.Raw)
}

// stringValue decodes a string literal as written in the source. Only the
// escapes that show up in paths are interpreted.
func stringValue(raw string) (string, bool) {
	i := strings.IndexAny(raw, `'"`)
	if i < 0 {
		return "", false
	}
	prefix := strings.ToLower(raw[:i])
	body := raw[i:]
	quote := body[:1]
	if strings.HasPrefix(body, strings.Repeat(quote, 3)) && len(body) >= 6 {
		quote = body[:3]
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}
	body = body[len(quote) : len(body)-len(quote)]
	if strings.Contains(prefix, "r") {
		return body, true
	}

	var sb strings.Builder
	sb.Grow(len(body))
	for j := 0; j < len(body); j++ {
		c := body[j]
		if c != '\\' || j+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		j++
		switch body[j] {
		case '\\', '\'', '"':
			sb.WriteByte(body[j])
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		default:
			// неизвестные escape-последовательности остаются как есть
			sb.WriteByte('\\')
			sb.WriteByte(body[j])
		}
	}
	return sb.String(), true
}
