package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Duration of one full regeneration run (snapshot -> persist)
	RegenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reco_regeneration_duration_seconds",
		Help:    "Duration of recommendation regeneration runs",
		Buckets: prometheus.DefBuckets,
	})

	// Regeneration runs by final outcome (success, validation_error,
	// scoring_error, persistence_error, empty_catalog)
	RegenerationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_regeneration_runs_total",
		Help: "Total regeneration runs by outcome",
	}, []string{"outcome"})

	// Offer labels that fell through to the low-confidence catalog fallback
	ResolverFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_resolver_fallback_total",
		Help: "Offer labels resolved via the last-resort catalog fallback",
	})

	// Calls to the external scorer by outcome (ok, unavailable, timeout, malformed)
	ScorerRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_scorer_requests_total",
		Help: "Total scorer requests by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		RegenerationDuration,
		RegenerationRunsTotal,
		ResolverFallbackTotal,
		ScorerRequestsTotal,
	)
}
