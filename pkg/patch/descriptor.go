package patch

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/modkit/pkg/host"
)

// TypeRef names a host type.
type TypeRef string

// TypeProvider supplies an owner type that cannot be named statically.
type TypeProvider func() TypeRef

// Descriptor declares a patch target. The zero value is invalid; build
// descriptors with Method, Getter or Setter.
type Descriptor struct {
	owner     TypeRef
	name      string
	kind      host.MemberKind
	params    []TypeRef
	hasParams bool
}

// Method declares a method target. An empty owner defers the owner type to a
// TypeProvider.
func Method(owner TypeRef, name string) Descriptor {
	return Descriptor{owner: owner, name: name, kind: host.Method}
}

// Getter declares a property getter target.
func Getter(owner TypeRef, name string) Descriptor {
	return Descriptor{owner: owner, name: name, kind: host.Getter}
}

// Setter declares a property setter target.
func Setter(owner TypeRef, name string) Descriptor {
	return Descriptor{owner: owner, name: name, kind: host.Setter}
}

// Params returns a copy of d that matches only the overload with exactly
// these parameter types, in order. Params() with no arguments selects the
// parameterless overload.
func (d Descriptor) Params(types ...TypeRef) Descriptor {
	d.params = append([]TypeRef{}, types...)
	d.hasParams = true
	return d
}

// Owner returns the declared owner type, or false when a provider supplies it.
func (d Descriptor) Owner() (TypeRef, bool) { return d.owner, d.owner != "" }

// Name is the member name to resolve.
func (d Descriptor) Name() string { return d.name }

// Kind is the member kind.
func (d Descriptor) Kind() host.MemberKind { return d.kind }

// ParamShapes returns the declared parameter list, or false when unspecified.
func (d Descriptor) ParamShapes() ([]TypeRef, bool) {
	if !d.hasParams {
		return nil, false
	}
	return slices.Clone(d.params), true
}

// Validate reports structural problems with the descriptor.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.name) == "" {
		return ErrInvalidDescriptor
	}
	return nil
}

// String renders the descriptor as Owner.get_Name(A, B). Unspecified
// parameters render as (..) and a provider-supplied owner as "?".
func (d Descriptor) String() string {
	return d.render(d.owner)
}

func (d Descriptor) render(owner TypeRef) string {
	var b strings.Builder
	if owner == "" {
		owner = "?"
	}
	b.WriteString(string(owner))
	b.WriteByte('.')
	switch d.kind {
	case host.Getter:
		b.WriteString("get_")
	case host.Setter:
		b.WriteString("set_")
	}
	b.WriteString(d.name)
	b.WriteByte('(')
	if !d.hasParams {
		b.WriteString("..")
	} else {
		for i, p := range d.params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(string(p))
		}
	}
	b.WriteByte(')')
	return b.String()
}

func (d Descriptor) matches(m *host.Member) bool {
	if !d.hasParams {
		return true
	}
	if len(m.Params) != len(d.params) {
		return false
	}
	for i, p := range d.params {
		if m.Params[i] != string(p) {
			return false
		}
	}
	return true
}

// Hooks are the bodies a unit injects. At least one must be set.
type Hooks struct {
	// Before runs ahead of the original. Returning false skips it.
	Before func(inv *host.Invocation) bool
	// After runs once the original or its replacement finished.
	After func(inv *host.Invocation)
	// Replace runs instead of the original.
	Replace host.Func
}

// IsZero reports whether no hook is set.
func (h Hooks) IsZero() bool {
	return h.Before == nil && h.After == nil && h.Replace == nil
}

// Detour converts the hooks to the host dispatch representation.
func (h Hooks) Detour() host.Detour {
	return host.Detour{Before: h.Before, Replace: h.Replace, After: h.After}
}
