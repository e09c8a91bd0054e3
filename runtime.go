package modkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modkit/pkg/backend"
	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/config"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/host"
	"github.com/dmitrymomot/modkit/pkg/httpserver"
	"github.com/dmitrymomot/modkit/pkg/logger"
	"github.com/dmitrymomot/modkit/pkg/metrics"
	"github.com/dmitrymomot/modkit/pkg/patch"
	"github.com/dmitrymomot/modkit/pkg/settingsapi"
	"github.com/dmitrymomot/modkit/pkg/store"
)

// Runtime is the process-scoped orchestration context.
type Runtime struct {
	cfg      config.Runtime
	logger   *slog.Logger
	gate     *buildinfo.Gate
	backend  patch.Backend
	registry *patch.Registry
	store    store.Store
	manager  *feature.Manager
	metrics  *prometheus.Registry
	api      *settingsapi.Server

	mu      sync.Mutex
	modules map[string]bool
}

// Option configures New.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	catalog  *buildinfo.Catalog
	store    store.Store
	metrics  *prometheus.Registry
	language language.Tag
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithCatalog replaces the default build catalog.
func WithCatalog(c *buildinfo.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithStore uses st instead of opening the configured driver. The runtime
// closes it on Shutdown.
func WithStore(st store.Store) Option {
	return func(o *options) { o.store = st }
}

// WithMetricsRegistry registers patch metrics on reg.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.metrics = reg }
}

// WithLanguage sets the menu collation language.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.language = tag }
}

// New builds the runtime. An unknown build, an unknown backend or a store
// that cannot be opened are fatal.
func New(ctx context.Context, cfg config.Runtime, hostRT *host.Runtime, opts ...Option) (*Runtime, error) {
	o := options{catalog: buildinfo.DefaultCatalog(), language: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		level, err := cfg.Level()
		if err != nil {
			return nil, err
		}
		log = logger.New(logger.WithEnvironment(cfg.Env, cfg.Service), logger.WithLevel(level))
	}

	build, err := o.catalog.Parse(cfg.Build)
	if err != nil {
		return nil, err
	}
	gate, err := buildinfo.NewGate(o.catalog, build)
	if err != nil {
		return nil, err
	}
	log = log.With(logger.Build(gate.CurrentName()))

	b, err := backend.New(backend.Kind(cfg.Backend), hostRT)
	if err != nil {
		return nil, err
	}

	promReg := o.metrics
	if promReg == nil {
		promReg = prometheus.NewRegistry()
	}
	registry := patch.NewRegistry(
		patch.NewResolver(b),
		patch.WithLogger(log),
		patch.WithObserver(metrics.NewPatchObserver(promReg)),
	)

	st := o.store
	if st == nil {
		st, err = store.Open(ctx, cfg.Store, log)
		if err != nil {
			return nil, fmt.Errorf("open config store: %w", err)
		}
	}

	mgr := feature.NewManager(gate, registry, st, feature.WithLogger(log))
	r := &Runtime{
		cfg:      cfg,
		logger:   log,
		gate:     gate,
		backend:  b,
		registry: registry,
		store:    st,
		manager:  mgr,
		metrics:  promReg,
		api: settingsapi.NewServer(mgr, gate,
			settingsapi.WithDevMode(cfg.DevMode),
			settingsapi.WithLanguage(o.language),
			settingsapi.WithLogger(log)),
		modules: make(map[string]bool),
	}

	log.InfoContext(ctx, "modkit runtime ready",
		logger.Backend(b.Name()),
		slog.String("store", cfg.Store.Driver),
		slog.Bool("dev_mode", cfg.DevMode))
	return r, nil
}

// Accessors for the components built by New.
func (r *Runtime) Gate() *buildinfo.Gate         { return r.gate }
func (r *Runtime) Manager() *feature.Manager     { return r.manager }
func (r *Runtime) Registry() *patch.Registry     { return r.registry }
func (r *Runtime) Logger() *slog.Logger          { return r.logger }
func (r *Runtime) Backend() patch.Backend        { return r.backend }
func (r *Runtime) Settings() *settingsapi.Server { return r.api }

// Load registers the features of each module. Modules that do not apply to
// the current build are skipped. A module with a configuration error is
// rejected as a whole and reported in the returned error; other modules
// still load.
func (r *Runtime) Load(ctx context.Context, modules ...Module) (LoadReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := LoadReport{Failed: make(map[string]error)}
	var errs []error
	for _, m := range modules {
		if err := r.loadModule(ctx, m); err != nil {
			if errors.Is(err, errSkipped) {
				report.Skipped = append(report.Skipped, m.Name)
				continue
			}
			report.Failed[m.Name] = err
			errs = append(errs, fmt.Errorf("module %q: %w", m.Name, err))
			r.logger.ErrorContext(ctx, "module rejected",
				slog.String("module", m.Name), logger.Error(err))
			continue
		}
		report.Loaded = append(report.Loaded, m.Name)
	}
	return report, errors.Join(errs...)
}

var errSkipped = errors.New("module skipped")

func (r *Runtime) loadModule(ctx context.Context, m Module) error {
	if m.Name == "" {
		return ErrInvalidModule
	}
	if r.modules[m.Name] {
		return ErrDuplicateModule
	}
	if !m.Builds.IsEmpty() && !r.gate.Applies(m.Builds) {
		r.logger.InfoContext(ctx, "module does not apply to current build",
			slog.String("module", m.Name),
			slog.String("builds", r.gate.Label(m.Builds)))
		return errSkipped
	}
	if err := r.manager.RegisterAll(ctx, m.Features...); err != nil {
		return err
	}
	r.modules[m.Name] = true
	return nil
}

// Handler serves the settings API, /metrics and /healthz.
func (r *Runtime) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Handle("/metrics", metrics.Handler(r.metrics))
	mux.Get("/healthz", httpserver.ReadinessHandler(r.logger, r.storeReady))
	mux.Mount("/", r.api.Router())
	return mux
}

// Serve runs Handler on the configured address until ctx ends.
func (r *Runtime) Serve(ctx context.Context) error {
	srv := httpserver.New(r.cfg.HTTPAddr, httpserver.WithLogger(r.logger))
	return srv.Run(ctx, r.Handler())
}

func (r *Runtime) storeReady(ctx context.Context) error {
	_, _, err := r.store.Read(ctx, store.EnabledKey("healthz"))
	return err
}

// Shutdown destroys every feature and closes the store.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.api.Close()
	errs := []error{r.manager.Shutdown(ctx)}
	if err := r.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close config store: %w", err))
	}
	err := errors.Join(errs...)
	if err != nil {
		r.logger.WarnContext(ctx, "modkit shutdown incomplete", logger.Error(err))
	}
	return err
}
