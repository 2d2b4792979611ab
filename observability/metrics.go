// Package observability provides Prometheus metrics for the aio backend.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// GateDecisionsTotal counts authentication gate outcomes by reason
	GateDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aio_gate_decisions_total",
			Help: "Authentication gate decisions",
		},
		[]string{"outcome", "reason"},
	)

	// LogoutsTotal counts successful logouts
	LogoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aio_logouts_total",
			Help: "Successful logouts",
		},
	)
)

// Register adds all collectors to reg
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{GateDecisionsTotal, LogoutsTotal} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
