package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_loader_loads_total",
			Help: "Loader reads by outcome (fresh, stale, miss, error)",
		},
		[]string{"key", "outcome"},
	)

	refreshFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_loader_refresh_failures_total",
			Help: "Background refresh attempts that failed",
		},
		[]string{"key"},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal)
	prometheus.MustRegister(refreshFailures)
}
