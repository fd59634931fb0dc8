package host

import (
	"slices"
	"strings"
)

var defaultBuiltins = []string{
	"abs", "all", "any", "apply", "basestring", "bin", "bool", "buffer",
	"callable", "chr", "classmethod", "cmp", "coerce", "compile", "complex",
	"delattr", "dict", "dir", "divmod", "enumerate", "eval", "execfile",
	"file", "filter", "float", "format", "frozenset", "getattr", "globals",
	"hasattr", "hash", "help", "hex", "id", "input", "int", "intern",
	"isinstance", "issubclass", "iter", "len", "list", "locals", "long",
	"map", "max", "min", "next", "object", "oct", "open", "ord", "pow",
	"property", "range", "raw_input", "reduce", "reload", "repr",
	"reversed", "round", "set", "setattr", "slice", "sorted",
	"staticmethod", "str", "sum", "super", "tuple", "type", "unichr",
	"unicode", "vars", "xrange", "zip",

	"str.capitalize", "str.center", "str.count", "str.decode", "str.encode",
	"str.endswith", "str.find", "str.format", "str.index", "str.isalnum",
	"str.isalpha", "str.isdigit", "str.islower", "str.isspace",
	"str.isupper", "str.join", "str.ljust", "str.lower", "str.lstrip",
	"str.partition", "str.replace", "str.rfind", "str.rjust", "str.rsplit",
	"str.rstrip", "str.split", "str.splitlines", "str.startswith",
	"str.strip", "str.swapcase", "str.title", "str.upper", "str.zfill",

	"list.append", "list.count", "list.extend", "list.index", "list.insert",
	"list.pop", "list.remove", "list.reverse", "list.sort",

	"dict.clear", "dict.copy", "dict.fromkeys", "dict.get", "dict.has_key",
	"dict.items", "dict.iteritems", "dict.iterkeys", "dict.itervalues",
	"dict.keys", "dict.pop", "dict.popitem", "dict.setdefault",
	"dict.update", "dict.values",

	"set.add", "set.clear", "set.copy", "set.difference", "set.discard",
	"set.intersection", "set.issubset", "set.issuperset", "set.pop",
	"set.remove", "set.union", "set.update",

	"file.close", "file.flush", "file.read", "file.readline",
	"file.readlines", "file.seek", "file.tell", "file.write",
	"file.writelines",
}

// Builtins is the reference BuiltinIndex: the interpreter's builtin
// functions and the methods of its builtin types.
type Builtins struct {
	entries []string
}

// NewBuiltins returns the default table plus extra entries. Extra entries
// may be given with or without BuiltinPrefix.
func NewBuiltins(extra ...string) *Builtins {
	entries := make([]string, 0, len(defaultBuiltins)+len(extra))
	for _, name := range defaultBuiltins {
		entries = append(entries, BuiltinPrefix+name)
	}
	for _, name := range extra {
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, BuiltinPrefix) {
			name = BuiltinPrefix + name
		}
		entries = append(entries, name)
	}
	slices.Sort(entries)
	return &Builtins{entries: slices.Compact(entries)}
}

// Entries implements BuiltinIndex.
func (b *Builtins) Entries() []string {
	if b == nil {
		return nil
	}
	return b.entries
}
