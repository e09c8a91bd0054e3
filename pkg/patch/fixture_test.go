package patch_test

import (
	"errors"

	"github.com/dmitrymomot/modkit/pkg/backend"
	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
)

func newHost() *host.Runtime {
	health := 100.0
	player := host.NewType("PlayerAgent",
		host.NewMethod("TakeDamage", []string{"float"}, func(inv *host.Invocation) {
			health -= inv.Args[0].(float64)
			inv.Result = health
		}),
		host.NewMethod("TakeDamage", []string{"float", "bool"}, func(inv *host.Invocation) {
			inv.Result = health
		}),
		host.NewMethod("Heal", nil, func(inv *host.Invocation) {
			health = 100
			inv.Result = health
		}),
		host.NewGetter("Health", func(inv *host.Invocation) { inv.Result = health }),
		host.NewSetter("Health", "float", func(inv *host.Invocation) { health = inv.Args[0].(float64) }),
	)
	enemy := host.NewType("EnemyAgent<Wave>",
		host.NewMethod("Update", nil, func(inv *host.Invocation) { inv.Result = "tick" }),
	)
	return host.NewRuntime(player, enemy)
}

func newRegistry(rt *host.Runtime, opts ...patch.RegistryOption) *patch.Registry {
	return patch.NewRegistry(patch.NewResolver(backend.NewReflection(rt)), opts...)
}

var skipHook = patch.Hooks{Before: func(inv *host.Invocation) bool {
	inv.Result = -1.0
	return false
}}

// flakyBackend fails host mutations on demand.
type flakyBackend struct {
	patch.Backend
	failInstall   bool
	failUninstall bool
}

func (b *flakyBackend) Install(h patch.Handle, hooks patch.Hooks) error {
	if b.failInstall {
		return errors.New("dispatch slot is locked")
	}
	return b.Backend.Install(h, hooks)
}

func (b *flakyBackend) Uninstall(h patch.Handle) error {
	if b.failUninstall {
		return errors.New("dispatch slot is locked")
	}
	return b.Backend.Uninstall(h)
}

type recorder struct {
	events []string
	active int
}

func (r *recorder) OnResolve(e patch.Event) { r.record("resolve", e) }
func (r *recorder) OnApply(e patch.Event)   { r.record("apply", e) }
func (r *recorder) OnRevert(e patch.Event)  { r.record("revert", e) }

func (r *recorder) record(op string, e patch.Event) {
	status := "ok"
	if e.Err != nil {
		status = "err"
	}
	r.events = append(r.events, op+":"+e.Descriptor.Name()+":"+status)
	r.active = e.Active
}
