package backend

import (
	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
)

// Reflection is the backend for builds running on the reflection-capable runtime.
type Reflection struct {
	rt *host.Runtime
}

// NewReflection creates a reflection backend over rt.
func NewReflection(rt *host.Runtime) *Reflection {
	return &Reflection{rt: rt}
}

// Name returns "reflection".
func (b *Reflection) Name() string { return string(KindReflection) }

// LookupType finds a host type by its exact name.
func (b *Reflection) LookupType(ref patch.TypeRef) (*host.Type, error) {
	return lookup(b.rt, ref)
}

// Candidates returns every member of owner with the given name and kind.
func (b *Reflection) Candidates(owner *host.Type, name string, kind host.MemberKind) []*host.Member {
	return owner.Lookup(name, kind)
}

// Handle wraps m directly; every member is patchable.
func (b *Reflection) Handle(owner *host.Type, m *host.Member) (patch.Handle, error) {
	return patch.NewHandle(b.Name(), owner, m), nil
}

// Install detours the member through hooks.
func (b *Reflection) Install(h patch.Handle, hooks patch.Hooks) error {
	return b.rt.Detour(h.Member(), hooks.Detour())
}

// Uninstall restores the original member body.
func (b *Reflection) Uninstall(h patch.Handle) error {
	return b.rt.Restore(h.Member())
}
