package detector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	detectTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archstack_detect_total",
			Help: "Total number of cpu probe runs",
		},
		[]string{"probe", "status"}, // ok, unavailable or error
	)
)
