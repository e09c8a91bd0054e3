package patch

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Resolver maps descriptors onto handles and caches successful results.
type Resolver struct {
	backend Backend

	mu    sync.Mutex
	cache map[string]Handle
}

// NewResolver creates a resolver bound to b.
func NewResolver(b Backend) *Resolver {
	return &Resolver{backend: b, cache: make(map[string]Handle)}
}

// Backend returns the backend the resolver uses.
func (r *Resolver) Backend() Backend { return r.backend }

// Resolve finds the unique member d refers to. provider is consulted only
// when d has no owner type.
func (r *Resolver) Resolve(d Descriptor, provider TypeProvider) (Handle, error) {
	if err := d.Validate(); err != nil {
		return Handle{}, r.fail(d, err)
	}

	owner, ok := d.Owner()
	if !ok {
		if provider == nil {
			return Handle{}, r.fail(d, ErrMissingTypeProvider)
		}
		owner = provider()
		if owner == "" {
			return Handle{}, r.fail(d, errors.Join(ErrTypeNotFound, errors.New("type provider returned no type")))
		}
	}

	key := d.render(owner) + "/" + d.kind.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.cache[key]; ok {
		return h, nil
	}

	t, err := r.backend.LookupType(owner)
	if err != nil {
		if !errors.Is(err, ErrTypeNotFound) {
			err = errors.Join(ErrTypeNotFound, err)
		}
		return Handle{}, r.fail(d, err)
	}

	candidates := r.backend.Candidates(t, d.name, d.kind)
	if len(candidates) == 0 {
		return Handle{}, r.fail(d, fmt.Errorf("%w: no %s %q on %s", ErrMemberNotFound, d.kind, d.name, owner))
	}

	matched := candidates[:0:0]
	for _, m := range candidates {
		if d.matches(m) {
			matched = append(matched, m)
		}
	}

	switch {
	case len(matched) == 0:
		return Handle{}, r.fail(d, fmt.Errorf("%w: no overload of %s matches (%s)", ErrMemberNotFound, d.name, joinRefs(d.params)))
	case len(matched) > 1:
		sigs := make([]string, len(matched))
		for i, m := range matched {
			sigs[i] = m.Signature()
		}
		return Handle{}, r.fail(d, fmt.Errorf("%w: %s", ErrAmbiguousOverload, strings.Join(sigs, "; ")))
	}

	h, err := r.backend.Handle(t, matched[0])
	if err != nil {
		return Handle{}, r.fail(d, err)
	}

	r.cache[key] = h
	return h, nil
}

// Forget drops every cached handle.
func (r *Resolver) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

func (r *Resolver) fail(d Descriptor, err error) error {
	return &ResolutionError{Descriptor: d, Backend: r.backend.Name(), Err: err}
}

func joinRefs(refs []TypeRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
