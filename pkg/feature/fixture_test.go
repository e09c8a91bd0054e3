package feature_test

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/modkit/pkg/backend"
	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/patch"
	"github.com/dmitrymomot/modkit/pkg/store"
)

type fixture struct {
	rt       *host.Runtime
	player   *host.Type
	backend  *flakyBackend
	registry *patch.Registry
	store    store.Store
	mgr      *feature.Manager
}

func newFixture(build buildinfo.BuildID, st store.Store) *fixture {
	player := host.NewType("PlayerAgent",
		host.NewMethod("TakeDamage", []string{"float"}, func(inv *host.Invocation) { inv.Result = 90.0 }),
		host.NewMethod("Heal", nil, func(inv *host.Invocation) { inv.Result = 100.0 }),
		host.NewGetter("Health", func(inv *host.Invocation) { inv.Result = 100.0 }),
	)
	rt := host.NewRuntime(player)
	b := &flakyBackend{Backend: backend.NewReflection(rt)}
	reg := patch.NewRegistry(patch.NewResolver(b))
	gate := buildinfo.MustNewGate(nil, build)
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &fixture{
		rt:       rt,
		player:   player,
		backend:  b,
		registry: reg,
		store:    st,
		mgr:      feature.NewManager(gate, reg, st),
	}
}

func (f *fixture) call(name string) any {
	return f.rt.Call(f.player.Method(name), nil)
}

func (f *fixture) detoured(name string) bool {
	return f.rt.Detoured(f.player.Method(name))
}

var skipHook = patch.Hooks{Before: func(inv *host.Invocation) bool {
	inv.Result = -1.0
	return false
}}

func healPatch() feature.Patch {
	return feature.Patch{Target: patch.Method("PlayerAgent", "Heal"), Hooks: skipHook}
}

// flakyBackend fails uninstalls on demand.
type flakyBackend struct {
	patch.Backend
	failUninstall bool
}

func (b *flakyBackend) Uninstall(h patch.Handle) error {
	if b.failUninstall {
		return errors.New("dispatch slot is locked")
	}
	return b.Backend.Uninstall(h)
}

// brokenStore rejects writes on demand.
type brokenStore struct {
	*store.MemoryStore
	mu        sync.Mutex
	failWrite bool
}

func newBrokenStore() *brokenStore {
	return &brokenStore{MemoryStore: store.NewMemoryStore()}
}

func (s *brokenStore) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failWrite
	s.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.Write(ctx, key, value)
}

func (s *brokenStore) setFailWrite(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = v
}
