package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ClassID identifies a class entry (script class, placeholder or
// builtin-synthesised class).
type ClassID uint32

const NoClassID ClassID = 0

func (id ClassID) IsValid() bool { return id != NoClassID }

// FuncID identifies a declared function.
type FuncID uint32

const NoFuncID FuncID = 0

func (id FuncID) IsValid() bool { return id != NoFuncID }
