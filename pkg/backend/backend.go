package backend

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
)

// Kind names a backend.
type Kind string

const (
	KindReflection Kind = "reflection"
	KindInterop    Kind = "interop"
)

// New returns the backend for kind.
func New(kind Kind, rt *host.Runtime, opts ...InteropOption) (patch.Backend, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindReflection, "":
		return NewReflection(rt), nil
	case KindInterop:
		return NewInterop(rt, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
}

func lookup(rt *host.Runtime, ref patch.TypeRef) (*host.Type, error) {
	t, ok := rt.Type(string(ref))
	if !ok {
		return nil, fmt.Errorf("%w: %s", patch.ErrTypeNotFound, ref)
	}
	return t, nil
}
