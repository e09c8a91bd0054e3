package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
)

// Interop is the backend for ahead-of-time compiled builds whose types are
// proxied across an interop boundary.
type Interop struct {
	rt     *host.Runtime
	prefix string

	mu          sync.Mutex
	trampolines map[*host.Member]*host.Member
}

// InteropOption configures an Interop backend.
type InteropOption func(*Interop)

// WithTypePrefix makes type lookups try prefix+name before the bare name.
func WithTypePrefix(prefix string) InteropOption {
	return func(b *Interop) { b.prefix = prefix }
}

// NewInterop creates an interop backend over rt.
func NewInterop(rt *host.Runtime, opts ...InteropOption) *Interop {
	b := &Interop{rt: rt, trampolines: make(map[*host.Member]*host.Member)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns "interop".
func (b *Interop) Name() string { return string(KindInterop) }

// LookupType tries the prefixed interop name first, then the bare name.
func (b *Interop) LookupType(ref patch.TypeRef) (*host.Type, error) {
	if b.prefix != "" {
		if t, ok := b.rt.Type(b.prefix + string(ref)); ok {
			return t, nil
		}
	}
	return lookup(b.rt, ref)
}

// Candidates skips synthetic wrappers so a proxied member is never counted twice.
func (b *Interop) Candidates(owner *host.Type, name string, kind host.MemberKind) []*host.Member {
	var out []*host.Member
	for _, m := range owner.Lookup(name, kind) {
		if !m.Synthetic {
			out = append(out, m)
		}
	}
	return out
}

// Handle rejects synthetic wrappers, which cannot be patched.
func (b *Interop) Handle(owner *host.Type, m *host.Member) (patch.Handle, error) {
	if m.Synthetic {
		return patch.Handle{}, errors.Join(patch.ErrMemberNotFound, fmt.Errorf("%w: %s.%s", ErrSyntheticMember, owner.Name, m.Signature()))
	}
	return patch.NewHandle(b.Name(), owner, m), nil
}

// Install detours the member and registers a synthetic trampoline on its owner.
func (b *Interop) Install(h patch.Handle, hooks patch.Hooks) error {
	m := h.Member()
	if err := b.rt.Detour(m, hooks.Detour()); err != nil {
		return err
	}

	trampoline := &host.Member{
		Name:      m.Name,
		Kind:      m.Kind,
		Params:    m.Params,
		Synthetic: true,
		Impl: func(inv *host.Invocation) {
			inv.Result = b.rt.Call(m, inv.Instance, inv.Args...)
		},
	}
	if err := h.Owner().AddMember(trampoline); err != nil {
		_ = b.rt.Restore(m)
		return err
	}

	b.mu.Lock()
	b.trampolines[m] = trampoline
	b.mu.Unlock()
	return nil
}

// Uninstall removes the trampoline, then the detour. A trampoline already
// gone from the owner type counts as removed, so a retried uninstall only
// has the detour left to restore.
func (b *Interop) Uninstall(h patch.Handle) error {
	m := h.Member()
	b.mu.Lock()
	trampoline, ok := b.trampolines[m]
	b.mu.Unlock()

	if ok {
		err := h.Owner().RemoveMember(trampoline)
		if err != nil && !errors.Is(err, host.ErrMemberNotFound) {
			return err
		}
		b.mu.Lock()
		delete(b.trampolines, m)
		b.mu.Unlock()
	}
	return b.rt.Restore(m)
}

// Trampoline returns the synthetic wrapper registered for m while it is patched.
func (b *Interop) Trampoline(m *host.Member) (*host.Member, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.trampolines[m]
	return t, ok
}
