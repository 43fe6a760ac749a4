package depsolve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultError   = "error"
)

// Metrics holds the prometheus collectors updated by a Solver.
type Metrics struct {
	nodesVisited    prometheus.Counter
	conflicts       prometheus.Counter
	megapathsPruned prometheus.Counter
	solves          *prometheus.CounterVec
	solveDuration   prometheus.Histogram
}

// NewMetrics creates the solver collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodesVisited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depsolve_nodes_visited_total",
				Help: "Number of nodes appended to a path during resolution.",
			},
		),
		conflicts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depsolve_conflicts_total",
				Help: "Number of paths rejected because of conflicting identities.",
			},
		),
		megapathsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "depsolve_megapaths_pruned_total",
				Help: "Number of joined conjunction paths rejected because their members conflict.",
			},
		),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depsolve_solves_total",
				Help: "Number of solves by result.",
			},
			[]string{"result"},
		),
		solveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depsolve_solve_duration_seconds",
				Help:    "Time taken by a solve.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	for _, c := range []prometheus.Collector{m.nodesVisited, m.conflicts, m.megapathsPruned, m.solves, m.solveDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeSolve(result string, elapsed time.Duration) {
	m.solves.WithLabelValues(result).Inc()
	m.solveDuration.Observe(elapsed.Seconds())
}
