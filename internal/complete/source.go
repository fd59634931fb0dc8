package complete

import "strings"

// closeOpenBlock makes a prefix that stops right after a block header
// parseable: "for x in xs:" becomes "for x in xs: pass". Trailing
// comments on the header are dropped.
func closeOpenBlock(src string) string {
	trimmed := strings.TrimRight(src, " \t\r\n")
	start := strings.LastIndexByte(trimmed, '\n') + 1
	line := trimmed[start:]
	code := line
	if i := commentStart(code); i >= 0 {
		code = code[:i]
	}
	code = strings.TrimRight(code, " \t")
	if !strings.HasSuffix(code, ":") || strings.TrimSpace(code) == ":" {
		return src
	}
	return trimmed[:start] + code + " pass\n"
}

// commentStart returns the index of the '#' that opens a comment on line,
// skipping any inside string literals, or -1.
func commentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		}
	}
	return -1
}

// withCapture appends "indent + marker = expr" as the last line of src.
func withCapture(src, indent, marker, expr string) string {
	var sb strings.Builder
	sb.Grow(len(src) + len(indent) + len(marker) + len(expr) + 5)
	sb.WriteString(src)
	if src != "" && !strings.HasSuffix(src, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(indent)
	sb.WriteString(marker)
	sb.WriteString(" = ")
	sb.WriteString(expr)
	sb.WriteByte('\n')
	return sb.String()
}
