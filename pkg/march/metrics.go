package march

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Matching metrics
	matchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archstack_match_duration_seconds",
			Help:    "Duration of best-fit microarchitecture matching in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	matchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archstack_match_total",
			Help: "Total number of microarchitecture match attempts",
		},
		[]string{"status"}, // matched, none or ambiguous
	)

	// Flag resolution metrics
	resolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archstack_resolve_total",
			Help: "Total number of compiler flag resolution attempts",
		},
		[]string{"status"}, // resolved, unsupported or unknown_target
	)
)
