package patch

import "github.com/dmitrymomot/modkit/pkg/host"

// Backend is the runtime flavor the host runs under. Exactly one backend is
// selected at startup and every resolution goes through it.
type Backend interface {
	Name() string
	// LookupType finds the owner type. Errors wrap ErrTypeNotFound.
	LookupType(ref TypeRef) (*host.Type, error)
	// Candidates lists members of owner matching name and kind.
	Candidates(owner *host.Type, name string, kind host.MemberKind) []*host.Member
	// Handle produces the backend-specific handle for a chosen member.
	Handle(owner *host.Type, m *host.Member) (Handle, error)
	Install(h Handle, hooks Hooks) error
	Uninstall(h Handle) error
}

// Handle is a resolved target bound to a backend.
type Handle struct {
	backend string
	owner   *host.Type
	member  *host.Member
}

// NewHandle is used by Backend implementations.
func NewHandle(backend string, owner *host.Type, m *host.Member) Handle {
	return Handle{backend: backend, owner: owner, member: m}
}

// Backend names the backend that produced the handle.
func (h Handle) Backend() string { return h.backend }

// Owner is the resolved owner type.
func (h Handle) Owner() *host.Type { return h.owner }

// Member is the concrete host member the handle targets.
func (h Handle) Member() *host.Member { return h.member }

// IsZero reports whether the handle is unresolved.
func (h Handle) IsZero() bool { return h.member == nil }

// String renders the handle as Owner.Signature.
func (h Handle) String() string {
	if h.IsZero() {
		return "<unresolved>"
	}
	return h.owner.Name + "." + h.member.Signature()
}
