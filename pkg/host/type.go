package host

import (
	"fmt"
	"slices"
	"sync"
)

// Type is a named host type with an ordered member list.
type Type struct {
	Name string

	mu      sync.RWMutex
	members []*Member
}

// NewType creates a type with the given members.
func NewType(name string, members ...*Member) *Type {
	t := &Type{Name: name}
	for _, m := range members {
		_ = t.AddMember(m)
	}
	return t
}

// AddMember appends m to the type. Synthetic wrappers may share a slot with
// other wrappers; declared members may not.
func (t *Type) AddMember(m *Member) error {
	if m == nil {
		return ErrNilMember
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.members {
		if !m.Synthetic && existing.sameSlot(m) {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateMember, t.Name, m.Signature())
		}
	}
	m.owner = t
	t.members = append(t.members, m)
	return nil
}

// RemoveMember removes m from the type.
func (t *Type) RemoveMember(m *Member) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := slices.Index(t.members, m)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrMemberNotFound, t.Name)
	}
	t.members = slices.Delete(t.members, i, i+1)
	return nil
}

// Members returns a snapshot of the member list.
func (t *Type) Members() []*Member {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.members)
}

// Lookup returns all members with the given name and kind in declaration order.
func (t *Type) Lookup(name string, kind MemberKind) []*Member {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []*Member
	for _, m := range t.members {
		if m.Name == name && m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// Method returns the non-synthetic method with the exact parameter list.
func (t *Type) Method(name string, params ...string) *Member {
	for _, m := range t.Lookup(name, Method) {
		if !m.Synthetic && slices.Equal(m.Params, params) {
			return m
		}
	}
	return nil
}

// Getter returns the property getter for name.
func (t *Type) Getter(name string) *Member {
	return t.first(name, Getter)
}

// Setter returns the property setter for name.
func (t *Type) Setter(name string) *Member {
	return t.first(name, Setter)
}

func (t *Type) first(name string, kind MemberKind) *Member {
	for _, m := range t.Lookup(name, kind) {
		if !m.Synthetic {
			return m
		}
	}
	return nil
}
