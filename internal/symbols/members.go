package symbols

import (
	"scriptsense/internal/host"
)

// MemberKind classifies completion candidates.
type MemberKind uint8

const (
	MemberField MemberKind = iota + 1
	MemberMethod
	MemberAttribute // discovered through assignment on a script class
	MemberModule
	MemberBuiltin
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	case MemberAttribute:
		return "attribute"
	case MemberModule:
		return "module"
	case MemberBuiltin:
		return "builtin"
	default:
		return "member"
	}
}

// Member is one member-completion candidate.
type Member struct {
	Name          string
	Kind          MemberKind
	Static        bool
	DeclaringType string
	ValueType     string
	Params        []host.Param
}

// Members lists the member candidates of d.
func (t *Table) Members(d Descriptor) []Member {
	return t.members(d, map[ClassID]bool{})
}

func (t *Table) members(d Descriptor, visiting map[ClassID]bool) []Member {
	switch d.Kind {
	case DescInstance:
		if cls := t.reflect(d.Name); cls != nil {
			return fromHost(cls.Instance())
		}
		if id, ok := t.ScriptClass(d.Name); ok {
			return t.classMembers(id, visiting)
		}
	case DescStatic:
		return t.staticMembers(d.Name)
	case DescFunction:
		fn := t.Funcs.Get(d.Func)
		if fn == nil || fn.Return.IsUnknown() {
			return nil
		}
		if fn.Return.Kind == DescClass {
			return t.members(fn.Return, visiting)
		}
		return t.members(Instance(t.TypeName(fn.Return)), visiting)
	case DescClass:
		return t.classMembers(d.Class, visiting)
	}
	return nil
}

// staticMembers resolves a Static name as a module, then as a host class,
// then as "Owner.method" whose return types are expanded.
func (t *Table) staticMembers(name string) []Member {
	if members, ok := t.ModuleMembers(name); ok {
		out := make([]Member, 0, len(members))
		for _, m := range members {
			out = append(out, Member{Name: m, Kind: MemberModule, DeclaringType: name})
		}
		return out
	}
	if cls := t.reflect(name); cls != nil {
		return fromHost(cls.Statics())
	}
	owner, method, ok := host.SplitOwner(name)
	if !ok {
		return nil
	}
	cls := t.reflect(owner)
	if cls == nil {
		return nil
	}
	var out []Member
	for _, ret := range cls.ReturnTypes(method) {
		if rc := t.reflect(ret); rc != nil {
			out = append(out, fromHost(rc.Instance())...)
		}
	}
	return out
}

func (t *Table) classMembers(id ClassID, visiting map[ClassID]bool) []Member {
	cls := t.Classes.Get(id)
	if cls == nil || visiting[id] {
		return nil
	}
	visiting[id] = true
	defer delete(visiting, id)

	out := make([]Member, 0, len(cls.Members))
	have := make(map[string]struct{}, len(cls.Members))
	for _, name := range cls.Members {
		have[name] = struct{}{}
		out = append(out, t.ownMember(cls, name))
	}
	for _, super := range cls.Supers {
		var inherited []Member
		if hc := t.reflect(super); hc != nil {
			inherited = fromHost(hc.Members)
		} else if sid, ok := t.ScriptClass(super); ok && sid != id {
			inherited = t.classMembers(sid, visiting)
		} else if bid, ok := t.builtinClass(super); ok {
			inherited = t.classMembers(bid, visiting)
		}
		// first match wins across supers; overloads of one super stay together
		added := make(map[string]struct{})
		for _, m := range inherited {
			if _, dup := have[m.Name]; dup {
				continue
			}
			added[m.Name] = struct{}{}
			out = append(out, m)
		}
		for name := range added {
			have[name] = struct{}{}
		}
	}
	return out
}

func (t *Table) ownMember(cls *ClassInfo, name string) Member {
	m := Member{Name: name, Kind: MemberAttribute, DeclaringType: cls.Name}
	if cls.Builtin {
		m.Kind = MemberBuiltin
		return m
	}
	if d, ok := cls.Attrs[name]; ok {
		m.ValueType = t.TypeName(d)
	}
	if s := t.Scopes.Get(cls.Scope); s != nil && s.Kind == ScopeClass {
		if fn := t.Func(s.Vars[name]); fn != nil {
			m.Kind = MemberMethod
			m.Static = fn.Static
			m.ValueType = t.TypeName(fn.Return)
			params := fn.Params
			if !fn.Static && len(params) > 0 {
				params = params[1:]
			}
			for _, p := range params {
				m.Params = append(m.Params, host.Param{Name: p})
			}
		}
	}
	return m
}

// MemberType resolves the type of member name on d: a method yields its
// return type, a field its declared type, a script attribute its recorded
// descriptor. The second result is false when no such member is known.
func (t *Table) MemberType(d Descriptor, name string) (Descriptor, bool) {
	switch d.Kind {
	case DescUnknown:
		return Unknown(), false
	case DescClass:
		return t.classMemberType(d.Class, name, map[ClassID]bool{})
	case DescFunction:
		fn := t.Funcs.Get(d.Func)
		if fn == nil || fn.Return.IsUnknown() {
			return Unknown(), false
		}
		if fn.Return.Kind == DescClass {
			return t.MemberType(fn.Return, name)
		}
		return t.hostMemberType(t.TypeName(fn.Return), name)
	}
	if res, ok := t.hostMemberType(d.Name, name); ok {
		return res, true
	}
	if d.Kind == DescInstance {
		if id, ok := t.ScriptClass(d.Name); ok {
			return t.classMemberType(id, name, map[ClassID]bool{})
		}
	}
	return Unknown(), false
}

func (t *Table) hostMemberType(className, name string) (Descriptor, bool) {
	cls := t.reflect(className)
	if cls == nil {
		return Unknown(), false
	}
	if m, ok := cls.Method(name); ok {
		return Instance(m.ValueType), true
	}
	if m, ok := cls.FieldByName(name); ok {
		return Instance(m.ValueType), true
	}
	return Unknown(), false
}

func (t *Table) classMemberType(id ClassID, name string, visiting map[ClassID]bool) (Descriptor, bool) {
	cls := t.Classes.Get(id)
	if cls == nil || visiting[id] {
		return Unknown(), false
	}
	visiting[id] = true
	if d, ok := cls.Attrs[name]; ok {
		return d, true
	}
	if s := t.Scopes.Get(cls.Scope); s != nil && s.Kind == ScopeClass {
		if d, ok := s.Vars[name]; ok {
			if fn := t.Func(d); fn != nil {
				return fn.Return, true
			}
			return d, true
		}
	}
	for _, super := range cls.Supers {
		if res, ok := t.hostMemberType(super, name); ok {
			return res, true
		}
		if sid, ok := t.ScriptClass(super); ok {
			if res, ok := t.classMemberType(sid, name, visiting); ok {
				return res, true
			}
		}
	}
	for _, m := range cls.Members {
		if m == name {
			return Unknown(), true
		}
	}
	return Unknown(), false
}

func (t *Table) reflect(className string) *host.Class {
	if t.env.Host == nil || className == "" {
		return nil
	}
	cls, err := t.env.Host.Lookup(className)
	if err != nil {
		t.env.Log.V(1).Info("host reflection failed", "class", className, "error", err.Error())
		return nil
	}
	return cls
}

// ModuleMembers asks the module index; a nil index knows no modules.
func (t *Table) ModuleMembers(name string) ([]string, bool) {
	if t.env.Modules == nil || name == "" {
		return nil, false
	}
	members, ok := t.env.Modules.ModuleMembers(name)
	if !ok {
		t.env.Log.V(1).Info("not a module", "module", name)
	}
	return members, ok
}

// IsModule reports whether name resolves through the module index.
func (t *Table) IsModule(name string) bool {
	_, ok := t.ModuleMembers(name)
	return ok
}

func fromHost(list []host.Member) []Member {
	out := make([]Member, 0, len(list))
	for _, m := range list {
		kind := MemberMethod
		if m.Field {
			kind = MemberField
		}
		out = append(out, Member{
			Name:          m.Name,
			Kind:          kind,
			Static:        m.Static,
			DeclaringType: m.DeclaringType,
			ValueType:     m.ValueType,
			Params:        m.Params,
		})
	}
	return out
}
