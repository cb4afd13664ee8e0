package solver

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts solver work in Prometheus collectors.
type Metrics struct {
	updates     prometheus.Counter
	evaluations prometheus.Counter
	blocks      *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates the solver collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "modalmu_solver_updates_total",
			Help: "Number of times a node assignment was replaced by a new transformer",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "modalmu_solver_evaluations_total",
			Help: "Number of node recomputations performed by the worklist",
		}),
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "modalmu_solver_blocks_total",
			Help: "Number of equational blocks solved, by fixpoint kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "modalmu_solve_duration_seconds",
			Help:    "The duration of a complete check",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.updates, m.evaluations, m.blocks, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "registering solver metrics")
		}
	}
	return m, nil
}

func (m *Metrics) update() {
	if m != nil {
		m.updates.Inc()
	}
}

func (m *Metrics) evaluation() {
	if m != nil {
		m.evaluations.Inc()
	}
}

func (m *Metrics) block(kind string) {
	if m != nil {
		m.blocks.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) observe(d time.Duration) {
	if m != nil {
		m.duration.Observe(d.Seconds())
	}
}
