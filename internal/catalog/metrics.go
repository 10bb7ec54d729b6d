package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "barback_catalog_refresh_duration_seconds",
			Help:    "Duration of a full a-z catalog refresh in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	letterFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barback_catalog_letter_failures_total",
			Help: "Letters that contributed no drinks to a refresh because the fetch failed",
		},
		[]string{"reason"},
	)

	catalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "barback_catalog_drinks",
			Help: "Number of drinks in the current catalog snapshot",
		},
	)
)
