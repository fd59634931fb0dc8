package complete

import (
	"strings"

	"scriptsense/internal/host"
	"scriptsense/internal/symbols"
)

// Kind classifies a completion item.
type Kind uint8

const (
	KindVariable Kind = iota
	KindModule
	KindClass
	KindConstructor
	KindFunction
	KindMethod
	KindField
	KindAttribute
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindConstructor:
		return "constructor"
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindAttribute:
		return "attribute"
	case KindBuiltin:
		return "builtin"
	default:
		return "item"
	}
}

// Item is one completion suggestion.
type Item struct {
	Text    string // inserted when selected
	Display string // shown in the popup
	Kind    Kind
	Detail  string // type name or signature
	Summary string // declaring type, module path ...
	Score   int    // higher ranks first; 0 when unranked
}

func memberKind(k symbols.MemberKind) Kind {
	switch k {
	case symbols.MemberField:
		return KindField
	case symbols.MemberMethod:
		return KindMethod
	case symbols.MemberModule:
		return KindModule
	case symbols.MemberBuiltin:
		return KindBuiltin
	default:
		return KindAttribute
	}
}

func memberItem(m symbols.Member) Item {
	it := Item{
		Text:    m.Name,
		Display: m.Name,
		Kind:    memberKind(m.Kind),
		Detail:  m.ValueType,
		Summary: m.DeclaringType,
	}
	if it.Kind == KindMethod {
		it.Display = m.Name + "(" + formatParams(m.Params) + ")"
	}
	if m.Static {
		it.Summary = strings.TrimSpace("static " + it.Summary)
	}
	return it
}

func formatParams(params []host.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		switch {
		case p.Name != "" && p.Type != "":
			parts = append(parts, p.Type+" "+p.Name)
		case p.Name != "":
			parts = append(parts, p.Name)
		default:
			parts = append(parts, p.Type)
		}
	}
	return strings.Join(parts, ", ")
}
