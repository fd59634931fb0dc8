package trace

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Format selects how StreamTracer renders events.
type Format uint8

const (
	FormatText Format = iota
	FormatNDJSON
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid trace format: %q (expected: text|ndjson)", s)
	}
}

// FormatEvent renders ev as one line without the trailing newline.
func FormatEvent(ev *Event, f Format) []byte {
	if f == FormatNDJSON {
		return formatJSON(ev)
	}
	return []byte(formatText(ev))
}

func formatText(ev *Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%06d] %-5s %-6s %s", ev.Seq, ev.Kind, ev.Scope, ev.Name)
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " (%s)", ev.Elapsed)
	}
	if ev.Detail != "" {
		sb.WriteString(" ")
		sb.WriteString(ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%s", k, ev.Extra[k])
		}
	}
	return sb.String()
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	Span     uint64            `json:"span,omitempty"`
	Parent   uint64            `json:"parent,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
	ElapsedN int64             `json:"elapsed_ns,omitempty"`
}

func formatJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		Span:     ev.SpanID,
		Parent:   ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
		ElapsedN: ev.Elapsed.Nanoseconds(),
	})
	if err != nil {
		return []byte(`{"error":"trace marshal failed"}`)
	}
	return data
}
