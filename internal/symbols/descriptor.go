package symbols

import "fmt"

const (
	// IntegralTypeName and FloatingTypeName are the host types given to
	// integer and float literals.
	IntegralTypeName = "long"
	FloatingTypeName = "double"
	StringTypeName   = "java.lang.String"

	// CaptureMarker prefixes synthetic capture variables.
	CaptureMarker = "__capture__"

	// PlaceholderName names the class bound to function parameters until
	// the class unifier replaces it.
	PlaceholderName = "<unknown>"
)

// DescKind selects the Descriptor variant.
type DescKind uint8

const (
	DescUnknown DescKind = iota
	DescInstance
	DescStatic
	DescFunction
	DescClass
)

func (k DescKind) String() string {
	switch k {
	case DescInstance:
		return "instance"
	case DescStatic:
		return "static"
	case DescFunction:
		return "function"
	case DescClass:
		return "class"
	default:
		return "unknown"
	}
}

// Descriptor is what is known about a binding's type. Function and class
// variants refer into the table arenas so that later mutation of a class
// entry is visible to every holder.
type Descriptor struct {
	Kind  DescKind
	Name  string // Instance/Static type or module name
	Func  FuncID
	Class ClassID
}

func Unknown() Descriptor { return Descriptor{} }

func Instance(typeName string) Descriptor {
	if typeName == "" {
		return Descriptor{}
	}
	return Descriptor{Kind: DescInstance, Name: typeName}
}

func Static(name string) Descriptor {
	if name == "" {
		return Descriptor{}
	}
	return Descriptor{Kind: DescStatic, Name: name}
}

func FunctionDesc(id FuncID) Descriptor { return Descriptor{Kind: DescFunction, Func: id} }

func ClassDesc(id ClassID) Descriptor { return Descriptor{Kind: DescClass, Class: id} }

func (d Descriptor) IsUnknown() bool { return d.Kind == DescUnknown }

func (d Descriptor) String() string {
	switch d.Kind {
	case DescInstance, DescStatic:
		return fmt.Sprintf("%s(%s)", d.Kind, d.Name)
	case DescFunction:
		return fmt.Sprintf("function#%d", d.Func)
	case DescClass:
		return fmt.Sprintf("class#%d", d.Class)
	default:
		return "unknown"
	}
}

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeModule
	ScopeFunction
	ScopeClass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	default:
		return "invalid"
	}
}

// Scope is one node of the lexical scope tree.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	ClassName string // set for class bodies
	Imports   map[string]Descriptor
	Vars      map[string]Descriptor
	Children  []ScopeID
}

// IsEmpty reports whether the scope declares nothing.
func (s *Scope) IsEmpty() bool {
	return len(s.Imports) == 0 && len(s.Vars) == 0
}

// FuncInfo describes a declared function or method.
type FuncInfo struct {
	Name   string
	Return Descriptor // Unknown when the body does not end in return
	Params []string
	Scope  ScopeID
	Static bool // @staticmethod
}

// ClassInfo describes a script class, a parameter placeholder or a class
// synthesised from builtin entries.
type ClassInfo struct {
	Name       string
	Supers     []string
	CtorParams []string
	Members    []string
	// Attrs holds the types of members discovered through attribute
	// assignment.
	Attrs       map[string]Descriptor
	Scope       ScopeID
	Placeholder bool
	Builtin     bool
}

// AddMember appends name unless already present. Members only accumulate.
func (c *ClassInfo) AddMember(name string) {
	for _, have := range c.Members {
		if have == name {
			return
		}
	}
	c.Members = append(c.Members, name)
}

// SetAttr records the type of an attribute member.
func (c *ClassInfo) SetAttr(name string, d Descriptor) {
	c.AddMember(name)
	if d.IsUnknown() {
		return
	}
	if c.Attrs == nil {
		c.Attrs = make(map[string]Descriptor)
	}
	c.Attrs[name] = d
}
