package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 16
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a scope and links it under parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, className string) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		ClassName: className,
		Imports:   make(map[string]Descriptor),
		Vars:      make(map[string]Descriptor),
	})
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Classes is the class arena. Entries are mutated in place by the class
// unifier; descriptors only hold IDs.
type Classes struct {
	data []ClassInfo
}

func NewClasses(capacity uint32) *Classes {
	if capacity == 0 {
		capacity = 16
	}
	return &Classes{data: make([]ClassInfo, 1, capacity+1)}
}

func (c *Classes) New(info ClassInfo) ClassID {
	value, err := safecast.Conv[uint32](len(c.data))
	if err != nil {
		panic(fmt.Errorf("classes arena overflow: %w", err))
	}
	c.data = append(c.data, info)
	return ClassID(value)
}

func (c *Classes) Get(id ClassID) *ClassInfo {
	if !id.IsValid() || int(id) >= len(c.data) {
		return nil
	}
	return &c.data[id]
}

func (c *Classes) Len() int { return len(c.data) - 1 }

// Funcs is the function arena.
type Funcs struct {
	data []FuncInfo
}

func NewFuncs(capacity uint32) *Funcs {
	if capacity == 0 {
		capacity = 16
	}
	return &Funcs{data: make([]FuncInfo, 1, capacity+1)}
}

func (f *Funcs) New(info FuncInfo) FuncID {
	value, err := safecast.Conv[uint32](len(f.data))
	if err != nil {
		panic(fmt.Errorf("funcs arena overflow: %w", err))
	}
	f.data = append(f.data, info)
	return FuncID(value)
}

func (f *Funcs) Get(id FuncID) *FuncInfo {
	if !id.IsValid() || int(id) >= len(f.data) {
		return nil
	}
	return &f.data[id]
}

func (f *Funcs) Len() int { return len(f.data) - 1 }
