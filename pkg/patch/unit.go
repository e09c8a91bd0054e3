package patch

import (
	"errors"
)

// Unit is one patch target plus its hooks. Units are created by
// Registry.Register and share the registry's lock.
type Unit struct {
	reg      *Registry
	feature  string
	desc     Descriptor
	hooks    Hooks
	provider TypeProvider

	handle     Handle
	resolveErr error
	resolved   bool
	applied    bool
}

// UnitOption configures a unit at registration.
type UnitOption func(*Unit)

// WithTypeProvider sets a unit-level provider, overriding the feature's.
func WithTypeProvider(p TypeProvider) UnitOption {
	return func(u *Unit) { u.provider = p }
}

// Feature is the id of the owning feature.
func (u *Unit) Feature() string { return u.feature }

// Descriptor is the target the unit patches.
func (u *Unit) Descriptor() Descriptor { return u.desc }

// Applied reports whether the unit's hooks are live.
func (u *Unit) Applied() bool {
	u.reg.mu.Lock()
	defer u.reg.mu.Unlock()
	return u.applied
}

// Handle returns the resolved handle, or false before successful resolution.
func (u *Unit) Handle() (Handle, bool) {
	u.reg.mu.Lock()
	defer u.reg.mu.Unlock()
	return u.handle, u.resolved && u.resolveErr == nil
}

// Resolve resolves the target once. Later calls return the first outcome.
func (u *Unit) Resolve() error {
	u.reg.mu.Lock()
	defer u.reg.mu.Unlock()
	return u.resolve()
}

// Apply installs the hooks. Applying an applied unit is a no-op.
func (u *Unit) Apply() error {
	u.reg.mu.Lock()
	defer u.reg.mu.Unlock()
	return u.apply()
}

// Revert removes the hooks. Reverting a reverted unit is a no-op.
func (u *Unit) Revert() error {
	u.reg.mu.Lock()
	defer u.reg.mu.Unlock()
	return u.revert()
}

func (u *Unit) resolve() error {
	if u.resolved {
		return u.resolveErr
	}
	u.resolved = true

	provider := u.provider
	if provider == nil {
		provider = u.reg.providers[u.feature]
	}
	u.handle, u.resolveErr = u.reg.resolver.Resolve(u.desc, provider)
	u.reg.observer.OnResolve(u.event(u.resolveErr))
	if u.resolveErr != nil {
		u.reg.logFailure("resolve", u, u.resolveErr)
	}
	return u.resolveErr
}

func (u *Unit) apply() error {
	if u.applied {
		return nil
	}

	if err := u.resolve(); err != nil {
		return u.fail("apply", errors.Join(ErrUnresolvedTarget, err))
	}

	if owner, ok := u.reg.active[u.handle.Member()]; ok && owner != u {
		return u.fail("apply", ErrTargetAlreadyPatched)
	}

	if err := u.reg.resolver.Backend().Install(u.handle, u.hooks); err != nil {
		return u.fail("apply", errors.Join(ErrHostMutationFailed, err))
	}

	u.applied = true
	u.reg.active[u.handle.Member()] = u
	u.reg.observer.OnApply(u.event(nil))
	return nil
}

func (u *Unit) revert() error {
	if !u.applied {
		return nil
	}

	if err := u.reg.resolver.Backend().Uninstall(u.handle); err != nil {
		return u.fail("revert", errors.Join(ErrHostMutationFailed, err))
	}

	u.applied = false
	delete(u.reg.active, u.handle.Member())
	u.reg.observer.OnRevert(u.event(nil))
	return nil
}

func (u *Unit) fail(op string, err error) error {
	appErr := &ApplicationError{Feature: u.feature, Descriptor: u.desc, Op: op, Err: err}
	ev := u.event(appErr)
	switch op {
	case "apply":
		u.reg.observer.OnApply(ev)
	case "revert":
		u.reg.observer.OnRevert(ev)
	}
	u.reg.logFailure(op, u, appErr)
	return appErr
}

func (u *Unit) event(err error) Event {
	return Event{
		Feature:    u.feature,
		Descriptor: u.desc,
		Backend:    u.reg.resolver.Backend().Name(),
		Active:     len(u.reg.active),
		Err:        err,
	}
}
