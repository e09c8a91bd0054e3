package host

import (
	"fmt"
	"sync"
)

// Detour is the replacement dispatch for a member.
type Detour struct {
	// Before runs ahead of the body. Returning false skips the body.
	Before func(inv *Invocation) bool
	// Replace runs instead of the original body.
	Replace Func
	// After runs once the body (or its replacement) finished.
	After func(inv *Invocation)
}

// Runtime holds the host's types and the dispatch table.
type Runtime struct {
	mu      sync.RWMutex
	types   map[string]*Type
	detours map[*Member]Detour
}

// NewRuntime creates a runtime with the given types defined.
func NewRuntime(types ...*Type) *Runtime {
	r := &Runtime{
		types:   make(map[string]*Type),
		detours: make(map[*Member]Detour),
	}
	_ = r.Define(types...)
	return r
}

// Define registers types by name.
func (r *Runtime) Define(types ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		if _, ok := r.types[t.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		r.types[t.Name] = t
	}
	return nil
}

// Type returns the type registered under name.
func (r *Runtime) Type(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Detour installs d for m.
func (r *Runtime) Detour(m *Member, d Detour) error {
	if m == nil {
		return ErrNilMember
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.detours[m]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyDetoured, m.Signature())
	}
	r.detours[m] = d
	return nil
}

// Restore removes the detour for m.
func (r *Runtime) Restore(m *Member) error {
	if m == nil {
		return ErrNilMember
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.detours[m]; !ok {
		return fmt.Errorf("%w: %s", ErrNotDetoured, m.Signature())
	}
	delete(r.detours, m)
	return nil
}

// Detoured reports whether m currently dispatches through a detour.
func (r *Runtime) Detoured(m *Member) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.detours[m]
	return ok
}

// Call invokes m through the dispatch table and returns the result.
func (r *Runtime) Call(m *Member, instance any, args ...any) any {
	inv := &Invocation{Instance: instance, Args: args}

	r.mu.RLock()
	d, detoured := r.detours[m]
	r.mu.RUnlock()

	if !detoured {
		if m.Impl != nil {
			m.Impl(inv)
		}
		return inv.Result
	}

	run := true
	if d.Before != nil {
		run = d.Before(inv)
	}
	if run {
		switch {
		case d.Replace != nil:
			d.Replace(inv)
		case m.Impl != nil:
			m.Impl(inv)
		}
	}
	if d.After != nil {
		d.After(inv)
	}
	return inv.Result
}
