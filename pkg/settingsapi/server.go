package settingsapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modkit/pkg/buildinfo"
	"github.com/dmitrymomot/modkit/pkg/feature"
	"github.com/dmitrymomot/modkit/pkg/logger"
)

// Server serves the settings menu of one manager.
type Server struct {
	mgr    *feature.Manager
	gate   *buildinfo.Gate
	menu   MenuBuilder
	logger *slog.Logger

	mu          sync.Mutex
	pending     map[string]bool
	unsubscribe func()
}

// Option configures a Server.
type Option func(*Server)

// WithDevMode shows hidden entries and the Dev group.
func WithDevMode(enabled bool) Option {
	return func(s *Server) { s.menu.DevMode = enabled }
}

// WithLanguage sets the collation language used to order the menu.
func WithLanguage(tag language.Tag) Option {
	return func(s *Server) { s.menu.Language = tag }
}

// WithLogger sets the server logger. Nil keeps the no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a server for mgr and subscribes to its restart
// notifications. Close releases the subscription.
func NewServer(mgr *feature.Manager, gate *buildinfo.Gate, opts ...Option) *Server {
	s := &Server{
		mgr:     mgr,
		gate:    gate,
		menu:    MenuBuilder{Language: language.English},
		logger:  logger.Nop(),
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("settingsapi"))
	s.unsubscribe = mgr.Subscribe(s.onRestartChanged)
	return s
}

// Close stops tracking restart notifications.
func (s *Server) Close() {
	s.unsubscribe()
}

func (s *Server) onRestartChanged(n feature.Notification) {
	s.mu.Lock()
	if n.RestartRequested {
		s.pending[n.Feature] = true
	} else {
		delete(s.pending, n.Feature)
	}
	s.mu.Unlock()

	s.logger.Info("restart requirement changed",
		logger.Feature(n.Feature),
		slog.Bool("restart_requested", n.RestartRequested))
}

// PendingRestart lists the features whose persisted state differs from the
// live one, sorted by id.
func (s *Server) PendingRestart() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Router returns the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/features", s.listFeatures)
	r.Route("/features/{id}", func(r chi.Router) {
		r.Get("/", s.getFeature)
		r.Post("/toggle", s.toggleFeature)
		r.Put("/settings/{name}", s.putSetting)
	})
	r.Get("/restart", s.restart)
	r.Get("/diagnostics", s.diagnostics)
	return r
}

// Menu returns the current menu.
func (s *Server) Menu() Menu {
	return s.menu.Build(s.gate, s.mgr.Features(), s.mgr.AnyRestartRequested())
}

func (s *Server) listFeatures(w http.ResponseWriter, r *http.Request) {
	writeData(w, s.Menu(), map[string]any{"dev_mode": s.menu.DevMode})
}

func (s *Server) getFeature(w http.ResponseWriter, r *http.Request) {
	v, err := s.view(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, s.menu.Entry(v), nil)
}

func (s *Server) toggleFeature(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := s.view(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if v.Automated || v.DisableToggle {
		writeError(w, ErrToggleLocked)
		return
	}

	enabled, err := s.mgr.Toggle(r.Context(), id)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "toggle failed", logger.Feature(id), logger.Error(err))
		writeError(w, err)
		return
	}
	v, _ = s.mgr.Feature(id)
	writeData(w, s.menu.Entry(v), map[string]any{
		"enabled":           enabled,
		"restart_requested": s.mgr.AnyRestartRequested(),
	})
}

type settingRequest struct {
	Value any `json:"value"`
}

func (s *Server) putSetting(w http.ResponseWriter, r *http.Request) {
	id, name := chi.URLParam(r, "id"), chi.URLParam(r, "name")
	if _, err := s.view(id); err != nil {
		writeError(w, err)
		return
	}

	var req settingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Join(errBadRequest, err))
		return
	}

	if err := s.mgr.SetSetting(r.Context(), id, name, req.Value); err != nil {
		s.logger.WarnContext(r.Context(), "setting rejected",
			logger.Feature(id), logger.Setting(name), logger.Error(err))
		writeError(w, err)
		return
	}

	sv, err := s.mgr.Setting(id, name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, settingEntry(sv), nil)
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]any{
		"restart_requested": s.mgr.AnyRestartRequested(),
		"features":          s.PendingRestart(),
	}, nil)
}

func (s *Server) diagnostics(w http.ResponseWriter, r *http.Request) {
	diags := s.mgr.Diagnostics()
	out := make([]DiagnosticEntry, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagnosticEntry(d))
	}
	writeData(w, out, map[string]any{"count": len(out)})
}

// view returns a feature visible in the current mode.
func (s *Server) view(id string) (feature.View, error) {
	v, ok := s.mgr.Feature(id)
	if !ok || !s.menu.visible(v) {
		return feature.View{}, errors.Join(errNotFound, feature.ErrFeatureNotFound)
	}
	return v, nil
}
