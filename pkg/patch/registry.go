package patch

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/logger"
)

// Registry owns every unit grouped by feature.
type Registry struct {
	mu        sync.Mutex
	resolver  *Resolver
	logger    *slog.Logger
	observer  Observer
	units     map[string][]*Unit
	providers map[string]TypeProvider
	active    map[*host.Member]*Unit
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger. Nil keeps the no-op logger.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver reports resolve, apply and revert outcomes to o.
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRegistry creates an empty registry resolving through resolver.
func NewRegistry(resolver *Resolver, opts ...RegistryOption) *Registry {
	r := &Registry{
		resolver:  resolver,
		logger:    logger.Nop(),
		observer:  nopObserver{},
		units:     make(map[string][]*Unit),
		providers: make(map[string]TypeProvider),
		active:    make(map[*host.Member]*Unit),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logger.Component("patch"), logger.Backend(resolver.Backend().Name()))
	return r
}

// Register declares a unit for feature. The unit is not resolved until it is
// first applied or ResolveAll is called.
func (r *Registry) Register(feature string, d Descriptor, hooks Hooks, opts ...UnitOption) (*Unit, error) {
	if feature == "" {
		return nil, errors.Join(ErrInvalidDescriptor, errors.New("feature id is empty"))
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", err, d)
	}
	if hooks.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrMissingHooks, d)
	}

	u := &Unit{reg: r, feature: feature, desc: d, hooks: hooks}
	for _, opt := range opts {
		opt(u)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[feature] = append(r.units[feature], u)
	return u, nil
}

// SetTypeProvider registers the feature-wide provider used by units whose
// descriptor has no owner type. A feature may register one provider.
func (r *Registry) SetTypeProvider(feature string, p TypeProvider) error {
	if p == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[feature]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTypeProvider, feature)
	}
	r.providers[feature] = p
	return nil
}

// BackendName returns the name of the backend units resolve against.
func (r *Registry) BackendName() string {
	return r.resolver.Backend().Name()
}

// Units returns the feature's units in registration order.
func (r *Registry) Units(feature string) []*Unit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.units[feature])
}

// ActiveUnit returns the applied unit that owns m, if any.
func (r *Registry) ActiveUnit(m *host.Member) (*Unit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.active[m]
	return u, ok
}

// ActiveCount returns the number of applied units.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// ResolveAll resolves every unit of feature.
func (r *Registry) ResolveAll(feature string) BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.each(feature, false, (*Unit).resolve)
}

// ApplyAll applies every unit of feature in registration order. A failing
// unit does not stop the batch and does not undo earlier units.
func (r *Registry) ApplyAll(feature string) BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.each(feature, false, (*Unit).apply)
}

// RevertAll reverts every unit of feature in reverse registration order.
func (r *Registry) RevertAll(feature string) BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.each(feature, true, (*Unit).revert)
}

// Remove reverts and forgets every unit of feature.
func (r *Registry) Remove(feature string) BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := r.each(feature, true, (*Unit).revert)
	delete(r.units, feature)
	delete(r.providers, feature)
	return res
}

// RevertEverything reverts all applied units across features.
func (r *Registry) RevertEverything() BatchResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	features := make([]string, 0, len(r.units))
	for f := range r.units {
		features = append(features, f)
	}
	slices.Sort(features)

	var all BatchResult
	for _, f := range features {
		all.Results = append(all.Results, r.each(f, true, (*Unit).revert).Results...)
	}
	return all
}

func (r *Registry) each(feature string, reverse bool, op func(*Unit) error) BatchResult {
	units := r.units[feature]
	res := BatchResult{Feature: feature, Results: make([]UnitResult, 0, len(units))}
	for i := range units {
		u := units[i]
		if reverse {
			u = units[len(units)-1-i]
		}
		res.Results = append(res.Results, UnitResult{Unit: u, Err: op(u)})
	}
	return res
}

func (r *Registry) logFailure(op string, u *Unit, err error) {
	r.logger.Warn("patch "+op+" failed",
		logger.Feature(u.feature),
		logger.Descriptor(u.desc),
		logger.Op(op),
		logger.Error(err),
	)
}

// UnitResult is the outcome of one unit in a batch.
type UnitResult struct {
	Unit *Unit
	Err  error
}

// BatchResult collects per-unit outcomes.
type BatchResult struct {
	Feature string
	Results []UnitResult
}

// OK reports whether every unit succeeded.
func (b BatchResult) OK() bool {
	return len(b.Failed()) == 0
}

// Succeeded counts units without error.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the failing units.
func (b BatchResult) Failed() []UnitResult {
	var out []UnitResult
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Err joins all unit errors, or returns nil.
func (b BatchResult) Err() error {
	var errs []error
	for _, r := range b.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}
