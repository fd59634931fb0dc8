package symbols

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Dump writes the scope tree rooted at root: declared imports and
// variables per scope, children indented below their parent.
func (t *Table) Dump(w io.Writer, root ScopeID) error {
	return t.dump(w, root, "", "scope global")
}

func (t *Table) dump(w io.Writer, id ScopeID, indent, title string) error {
	s := t.Scopes.Get(id)
	if s == nil {
		return nil
	}
	header := title
	if s.ClassName != "" {
		header += " class " + s.ClassName
	}
	if _, err := fmt.Fprintf(w, "%s%s (%s):\n", indent, header, s.Kind); err != nil {
		return err
	}
	for _, name := range sortedKeys(s.Imports) {
		if _, err := fmt.Fprintf(w, "%s  import %s -> %s\n", indent, name, t.Describe(s.Imports[name])); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(s.Vars) {
		if _, err := fmt.Fprintf(w, "%s  var %s = %s\n", indent, name, t.Describe(s.Vars[name])); err != nil {
			return err
		}
	}
	for i, child := range s.Children {
		if err := t.dump(w, child, indent+"  ", fmt.Sprintf("scope[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// DumpString is Dump into a string.
func (t *Table) DumpString(root ScopeID) string {
	var sb strings.Builder
	_ = t.Dump(&sb, root)
	return sb.String()
}

func sortedKeys(m map[string]Descriptor) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
