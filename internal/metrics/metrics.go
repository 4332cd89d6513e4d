// Package metrics exposes prometheus counters for link creation and resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/serroba/shortlink/internal/shortener"
)

// Recorder implements shortener.Observer on top of prometheus counters.
type Recorder struct {
	resolutions *prometheus.CounterVec
	created     prometheus.Counter
	probes      prometheus.Counter
}

// NewRecorder creates the counters and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shortlink",
			Name:      "resolutions_total",
			Help:      "Short code resolutions by terminal path.",
		}, []string{"path"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shortlink",
			Name:      "created_total",
			Help:      "Short link records created.",
		}),
		probes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "shortlink",
			Name:      "collision_probes_total",
			Help:      "Candidate codes probed while creating records.",
		}),
	}

	reg.MustRegister(r.resolutions, r.created, r.probes)

	return r
}

func (r *Recorder) Resolved(path shortener.Path) {
	r.resolutions.WithLabelValues(string(path)).Inc()
}

func (r *Recorder) Created(probes int) {
	r.created.Inc()
	r.probes.Add(float64(probes))
}

// Compile-time check.
var _ shortener.Observer = (*Recorder)(nil)
