package feature

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/logger"
	"github.com/dmitrymomot/modkit/pkg/patch"
	"github.com/dmitrymomot/modkit/pkg/settings"
	"github.com/dmitrymomot/modkit/pkg/store"
)

// Notification announces a change of a feature's pending-restart flag.
type Notification struct {
	Feature          string
	RestartRequested bool
}

// Manager owns every registered feature. It is safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	// Deliveries take tickets under mu and run strictly in ticket order.
	notifyMu  sync.Mutex
	turn      *sync.Cond
	issued    uint64
	delivered uint64

	gate     *buildinfo.Gate
	registry *patch.Registry
	store    store.Store
	logger   *slog.Logger

	features  map[string]*entry
	order     []string
	groups    map[string][]string
	listeners []listener
	nextID    int
	destroyed bool
}

type entry struct {
	def              Definition
	state            State
	enabled          bool
	persisted        bool
	restartRequested bool
	diagnostics      []Diagnostic
}

type listener struct {
	id int
	fn func(Notification)
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Nil keeps the default no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager gating features with gate, applying patches
// through registry and persisting flags and settings in st.
func NewManager(gate *buildinfo.Gate, registry *patch.Registry, st store.Store, opts ...Option) *Manager {
	m := &Manager{
		gate:     gate,
		registry: registry,
		store:    st,
		logger:   logger.Nop(),
		features: make(map[string]*entry),
		groups:   make(map[string][]string),
	}
	m.turn = sync.NewCond(&m.notifyMu)
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("feature"), logger.Build(gate.CurrentName()))
	return m
}

// RegisterAll validates and registers a batch of features. Invalid or
// duplicate definitions reject the whole batch before anything is touched.
// Each accepted feature is gated, its patches are resolved and, when its
// persisted flag says so, applied.
func (m *Manager) RegisterAll(ctx context.Context, defs ...Definition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destroyed {
		return ErrFeatureDestroyed
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return err
		}
		if _, ok := m.features[def.ID]; ok || seen[def.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateFeature, def.ID)
		}
		seen[def.ID] = true
	}

	for _, def := range defs {
		m.register(ctx, def)
	}
	m.rebuildGroups()
	return nil
}

func (m *Manager) register(ctx context.Context, def Definition) {
	ctx = logger.ContextWithFeature(ctx, def.ID)
	f := &entry{def: def, state: StateDiscovered}
	m.features[def.ID] = f
	m.order = append(m.order, def.ID)

	applies := def.Builds.IsEmpty() || m.gate.Applies(def.Builds)
	f.state, _ = next(f.state, EventGate, outcome{applicable: applies})

	f.persisted = m.readEnabled(ctx, f)
	m.loadSettings(ctx, f)

	if f.state == StateInapplicable {
		m.logger.DebugContext(ctx, "feature does not apply to current build",
			slog.String("builds", m.gate.Label(def.Builds)))
		return
	}

	if err := m.registry.SetTypeProvider(def.ID, def.TypeProvider); err != nil {
		m.record(ctx, f, newDiagnostic(def.ID, "", m.registry.BackendName(), "register", err))
	}
	for _, p := range def.Patches {
		if !p.Builds.IsEmpty() && !m.gate.Applies(p.Builds) {
			m.logger.DebugContext(ctx, "patch skipped for current build", logger.Descriptor(p.Target))
			continue
		}
		var opts []patch.UnitOption
		if p.TypeProvider != nil {
			opts = append(opts, patch.WithTypeProvider(p.TypeProvider))
		}
		if _, err := m.registry.Register(def.ID, p.Target, p.Hooks, opts...); err != nil {
			m.record(ctx, f, newDiagnostic(def.ID, p.Target.String(), m.registry.BackendName(), "register", err))
		}
	}

	m.recordBatch(ctx, f, "resolve", m.registry.ResolveAll(def.ID))

	if f.persisted {
		m.enable(ctx, f)
	} else {
		f.state, _ = next(f.state, EventDisable, outcome{})
	}

	m.logger.InfoContext(ctx, "feature registered",
		slog.String("state", string(f.state)),
		slog.Bool("enabled", f.enabled))
}

// Enable turns a feature on. Inapplicable features are left untouched.
// Restart-bound features only record the new persisted value.
func (m *Manager) Enable(ctx context.Context, id string) error {
	return m.set(ctx, id, true)
}

// Disable turns a feature off and persists false even when some patches
// fail to revert.
func (m *Manager) Disable(ctx context.Context, id string) error {
	return m.set(ctx, id, false)
}

// Toggle flips a feature and returns its live enabled value afterwards. For
// restart-bound and inapplicable features only the persisted value flips.
func (m *Manager) Toggle(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	f, err := m.lookup(id)
	if err != nil {
		m.mu.Unlock()
		return false, err
	}
	ctx = logger.ContextWithFeature(ctx, id)

	var notes []Notification
	switch {
	case f.state == StateInapplicable:
		err = m.writeEnabled(ctx, f, !f.persisted)
	case f.def.RequiresRestart:
		err = m.writeEnabled(ctx, f, !f.persisted)
		notes = m.updateRestart(f)
	default:
		err = m.apply(ctx, f, !f.enabled)
	}
	enabled := f.enabled
	m.deliver(notes)
	return enabled, err
}

func (m *Manager) set(ctx context.Context, id string, on bool) error {
	m.mu.Lock()
	f, err := m.lookup(id)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	ctx = logger.ContextWithFeature(ctx, id)

	var notes []Notification
	switch {
	case f.state == StateInapplicable && !on:
		err = m.writeEnabled(ctx, f, false)
	case f.state == StateInapplicable:
		m.logger.InfoContext(ctx, "ignoring enable of feature not applicable to current build")
	case f.def.RequiresRestart:
		err = m.writeEnabled(ctx, f, on)
		notes = m.updateRestart(f)
	default:
		err = m.apply(ctx, f, on)
	}
	m.deliver(notes)
	return err
}

// apply switches the live patch set and persists the new value.
func (m *Manager) apply(ctx context.Context, f *entry, on bool) error {
	if on {
		if !f.enabled {
			m.enable(ctx, f)
		}
	} else if f.enabled {
		m.disable(ctx, f)
	}
	return m.writeEnabled(ctx, f, on)
}

func (m *Manager) enable(ctx context.Context, f *entry) {
	res := m.registry.ApplyAll(f.def.ID)
	m.recordBatch(ctx, f, "apply", res)

	state, err := next(f.state, EventEnable, outcome{batch: res})
	if err != nil {
		m.logger.ErrorContext(ctx, "unexpected lifecycle event", logger.Error(err))
		return
	}
	f.state = state
	f.enabled = true

	if f.def.OnEnable != nil {
		if err := f.def.OnEnable(ctx); err != nil {
			m.record(ctx, f, newDiagnostic(f.def.ID, "", "", "on_enable", err))
		}
	}
	if state == StateDegraded {
		m.logger.WarnContext(ctx, "feature enabled with missing patches",
			slog.Int("applied", res.Succeeded()),
			slog.Int("failed", len(res.Failed())))
	}
}

func (m *Manager) disable(ctx context.Context, f *entry) {
	res := m.registry.RevertAll(f.def.ID)
	m.recordBatch(ctx, f, "revert", res)

	state, err := next(f.state, EventDisable, outcome{batch: res})
	if err != nil {
		m.logger.ErrorContext(ctx, "unexpected lifecycle event", logger.Error(err))
		return
	}
	f.state = state
	f.enabled = false

	if f.def.OnDisable != nil {
		if err := f.def.OnDisable(ctx); err != nil {
			m.record(ctx, f, newDiagnostic(f.def.ID, "", "", "on_disable", err))
		}
	}
}

// updateRestart recomputes the pending-restart flag and returns the
// notification to publish, if the flag changed.
func (m *Manager) updateRestart(f *entry) []Notification {
	requested := f.persisted != f.enabled
	if requested == f.restartRequested {
		return nil
	}
	f.restartRequested = requested
	return []Notification{{Feature: f.def.ID, RestartRequested: requested}}
}

// deliver releases the state lock and calls listeners in subscription order.
// No manager lock is held while listeners run; the ticket taken under mu
// keeps deliveries in the order the changes were made.
func (m *Manager) deliver(notes []Notification) {
	if len(notes) == 0 {
		m.mu.Unlock()
		return
	}
	listeners := slices.Clone(m.listeners)
	ticket := m.issued
	m.issued++
	m.mu.Unlock()

	m.notifyMu.Lock()
	for m.delivered != ticket {
		m.turn.Wait()
	}
	m.notifyMu.Unlock()

	defer func() {
		m.notifyMu.Lock()
		m.delivered++
		m.turn.Broadcast()
		m.notifyMu.Unlock()
	}()
	for _, n := range notes {
		for _, l := range listeners {
			l.fn(n)
		}
	}
}

// Subscribe registers fn for restart notifications and returns a function
// removing it. Listeners run synchronously and must not toggle features.
func (m *Manager) Subscribe(fn func(Notification)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool { return l.id == id })
	}
}

// AnyRestartRequested reports whether any feature waits for a restart.
func (m *Manager) AnyRestartRequested() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.features {
		if f.restartRequested {
			return true
		}
	}
	return false
}

// IsEnabledInConfig returns the persisted flag of a feature.
func (m *Manager) IsEnabledInConfig(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.features[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrFeatureNotFound, id)
	}
	return f.persisted, nil
}

// Feature returns a snapshot of one feature.
func (m *Manager) Feature(id string) (View, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.features[id]
	if !ok {
		return View{}, false
	}
	return m.view(f), true
}

// Features returns snapshots of all features in registration order.
func (m *Manager) Features() []View {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]View, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.view(m.features[id]))
	}
	return out
}

// Groups returns features grouped by group name. Groups are sorted by name,
// features keep registration order.
func (m *Manager) Groups() []Group {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.groups))
	for name := range m.groups {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Group, 0, len(names))
	for _, name := range names {
		g := Group{Name: name}
		for _, id := range m.groups[name] {
			g.Features = append(g.Features, m.view(m.features[id]))
		}
		out = append(out, g)
	}
	return out
}

func (m *Manager) rebuildGroups() {
	groups := make(map[string][]string)
	for _, id := range m.order {
		name := m.features[id].def.GroupName()
		groups[name] = append(groups[name], id)
	}
	m.groups = groups
}

// Diagnostics returns every diagnostic recorded so far, oldest first.
func (m *Manager) Diagnostics() []Diagnostic {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Diagnostic
	for _, id := range m.order {
		out = append(out, m.features[id].diagnostics...)
	}
	slices.SortStableFunc(out, func(a, b Diagnostic) int { return a.At.Compare(b.At) })
	return out
}

// Setting returns a snapshot of one setting.
func (m *Manager) Setting(id, name string) (SettingView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id)
	if err != nil {
		return SettingView{}, err
	}
	s, err := findSetting(f, name)
	if err != nil {
		return SettingView{}, err
	}
	return m.settingView(s), nil
}

// SetSetting assigns a value to a setting and persists it. value takes the
// JSON-friendly form returned by settings.Value.
func (m *Manager) SetSetting(ctx context.Context, id, name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id)
	if err != nil {
		return err
	}
	s, err := findSetting(f, name)
	if err != nil {
		return err
	}
	if err := settings.Assign(s, value); err != nil {
		return err
	}

	data, err := settings.Encode(s)
	if err != nil {
		return err
	}
	ctx = logger.ContextWithFeature(ctx, id)
	if err := m.store.Write(ctx, store.SettingKey(id, name), data); err != nil {
		m.record(ctx, f, newDiagnostic(id, name, "", "persist", err))
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

// Shutdown reverts every applied patch best-effort and destroys all
// features. Later calls return nil.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return nil
	}
	m.destroyed = true

	var errs []error
	for _, id := range slices.Backward(m.order) {
		f := m.features[id]
		fctx := logger.ContextWithFeature(ctx, id)
		res := m.registry.Remove(id)
		m.recordBatch(fctx, f, "revert", res)
		if err := res.Err(); err != nil {
			errs = append(errs, err)
		}
		if f.enabled && f.def.OnDisable != nil {
			if err := f.def.OnDisable(fctx); err != nil {
				m.record(fctx, f, newDiagnostic(id, "", "", "on_disable", err))
			}
		}
		f.state, _ = next(f.state, EventDestroy, outcome{})
		f.enabled = false
	}
	m.logger.InfoContext(ctx, "features destroyed", slog.Int("count", len(m.order)))
	return errors.Join(errs...)
}

func (m *Manager) lookup(id string) (*entry, error) {
	if m.destroyed {
		return nil, ErrFeatureDestroyed
	}
	f, ok := m.features[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, id)
	}
	return f, nil
}

func findSetting(f *entry, name string) (settings.Setting, error) {
	for _, s := range f.def.Settings {
		if s.Meta().Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrSettingNotFound, f.def.ID, name)
}

func (m *Manager) readEnabled(ctx context.Context, f *entry) bool {
	data, found, err := m.store.Read(ctx, store.EnabledKey(f.def.ID))
	if err != nil {
		m.record(ctx, f, newDiagnostic(f.def.ID, "", "", "read_config", err))
		return f.def.EnabledByDefault
	}
	if !found {
		return f.def.EnabledByDefault
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		m.record(ctx, f, newDiagnostic(f.def.ID, "", "", "read_config", err))
		return f.def.EnabledByDefault
	}
	return v
}

func (m *Manager) writeEnabled(ctx context.Context, f *entry, v bool) error {
	f.persisted = v
	data, _ := json.Marshal(v)
	if err := m.store.Write(ctx, store.EnabledKey(f.def.ID), data); err != nil {
		m.record(ctx, f, newDiagnostic(f.def.ID, "", "", "persist", err))
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}

func (m *Manager) loadSettings(ctx context.Context, f *entry) {
	for _, s := range f.def.Settings {
		name := s.Meta().Name
		data, found, err := m.store.Read(ctx, store.SettingKey(f.def.ID, name))
		if err == nil && found {
			err = settings.Decode(s, data)
		}
		if err != nil {
			m.record(ctx, f, newDiagnostic(f.def.ID, name, "", "read_config", err))
		}
	}
}

// recordBatch turns unit failures into diagnostics. Apply failures caused by
// an unresolved target were already recorded at resolve time.
func (m *Manager) recordBatch(ctx context.Context, f *entry, op string, res patch.BatchResult) {
	for _, r := range res.Failed() {
		if op == "apply" && errors.Is(r.Err, patch.ErrUnresolvedTarget) && m.hasDiagnostic(f, r.Unit.Descriptor().String(), "resolve") {
			continue
		}
		backend := m.registry.BackendName()
		var resErr *patch.ResolutionError
		if errors.As(r.Err, &resErr) {
			backend = resErr.Backend
		}
		m.record(ctx, f, newDiagnostic(f.def.ID, r.Unit.Descriptor().String(), backend, op, r.Err))
	}
}

func (m *Manager) hasDiagnostic(f *entry, target, op string) bool {
	return slices.ContainsFunc(f.diagnostics, func(d Diagnostic) bool {
		return d.Target == target && d.Op == op
	})
}

func (m *Manager) record(ctx context.Context, f *entry, d Diagnostic) {
	f.diagnostics = append(f.diagnostics, d)
	m.logger.WarnContext(ctx, "feature diagnostic",
		logger.Diagnostic(d.ID),
		logger.Op(d.Op),
		slog.String("target", d.Target),
		logger.Error(d.Err))
}
