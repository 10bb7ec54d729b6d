package mw

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barback_http_requests_total",
		Help: "HTTP requests served, by route pattern and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "barback_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	rateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barback_http_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter.",
	})

	guardRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barback_http_guard_rejected_total",
		Help: "Admin requests rejected by the CIDR or Host guards.",
	}, []string{"guard"})
)
