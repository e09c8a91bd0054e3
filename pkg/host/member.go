package host

import (
	"slices"
	"strings"
)

// MemberKind distinguishes plain methods from property accessors.
type MemberKind uint8

const (
	Method MemberKind = iota
	Getter
	Setter
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case Method:
		return "method"
	case Getter:
		return "getter"
	case Setter:
		return "setter"
	default:
		return "unknown"
	}
}

// Invocation carries the receiver, arguments and result of one call.
// Hooks may mutate Args before the body runs and Result after it.
type Invocation struct {
	Instance any
	Args     []any
	Result   any
}

// Func is a member body.
type Func func(inv *Invocation)

// Member is a callable slot on a Type.
type Member struct {
	Name   string
	Kind   MemberKind
	Params []string
	// Synthetic marks wrappers injected by an interop layer rather than
	// declared by the host.
	Synthetic bool
	Impl      Func

	owner *Type
}

// Owner returns the type the member was added to.
func (m *Member) Owner() *Type { return m.owner }

// Signature renders the member as Name(Param, Param).
func (m *Member) Signature() string {
	prefix := ""
	switch m.Kind {
	case Getter:
		prefix = "get_"
	case Setter:
		prefix = "set_"
	}
	return prefix + m.Name + "(" + strings.Join(m.Params, ", ") + ")"
}

func (m *Member) sameSlot(o *Member) bool {
	return m.Name == o.Name && m.Kind == o.Kind && m.Synthetic == o.Synthetic && slices.Equal(m.Params, o.Params)
}

// NewMethod declares a method member.
func NewMethod(name string, params []string, impl Func) *Member {
	return &Member{Name: name, Kind: Method, Params: params, Impl: impl}
}

// NewGetter declares a property getter.
func NewGetter(name string, impl Func) *Member {
	return &Member{Name: name, Kind: Getter, Impl: impl}
}

// NewSetter declares a property setter taking a single value argument.
func NewSetter(name, valueType string, impl Func) *Member {
	return &Member{Name: name, Kind: Setter, Params: []string{valueType}, Impl: impl}
}
