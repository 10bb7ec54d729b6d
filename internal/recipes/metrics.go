package recipes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	remoteFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barback_recipes_remote_fallbacks_total",
			Help: "Lookups answered by the remote API after finding nothing locally",
		},
		[]string{"lookup"},
	)

	recipesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "barback_recipes",
			Help: "Number of user recipes held in memory",
		},
		[]string{"provenance"},
	)
)
