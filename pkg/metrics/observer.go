package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/modkit/pkg/patch"
)

const namespace = "modkit"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// PatchObserver records patch outcomes.
type PatchObserver struct {
	resolutions  *prometheus.CounterVec
	applications *prometheus.CounterVec
	reverts      *prometheus.CounterVec
	active       *prometheus.GaugeVec
}

var _ patch.Observer = (*PatchObserver)(nil)

// NewPatchObserver registers the patch metrics with reg. Registering twice
// on the same registry panics.
func NewPatchObserver(reg prometheus.Registerer) *PatchObserver {
	f := promauto.With(reg)
	labels := []string{"backend", "result"}
	return &PatchObserver{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patch_resolutions_total",
			Help:      "Patch target resolutions by result.",
		}, labels),
		applications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patch_applications_total",
			Help:      "Patch unit applications by result.",
		}, labels),
		reverts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patch_reverts_total",
			Help:      "Patch unit reverts by result.",
		}, labels),
		active: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "patches_active",
			Help:      "Patch units currently applied.",
		}, []string{"backend"}),
	}
}

// OnResolve counts a resolution by backend and result.
func (o *PatchObserver) OnResolve(e patch.Event) {
	o.resolutions.WithLabelValues(e.Backend, result(e.Err)).Inc()
}

// OnApply counts an application and records the active unit count.
func (o *PatchObserver) OnApply(e patch.Event) {
	o.applications.WithLabelValues(e.Backend, result(e.Err)).Inc()
	o.active.WithLabelValues(e.Backend).Set(float64(e.Active))
}

// OnRevert counts a revert and records the active unit count.
func (o *PatchObserver) OnRevert(e patch.Event) {
	o.reverts.WithLabelValues(e.Backend, result(e.Err)).Inc()
	o.active.WithLabelValues(e.Backend).Set(float64(e.Active))
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
