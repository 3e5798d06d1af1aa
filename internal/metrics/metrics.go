package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mpesa_token_refreshes_total",
		Help: "Total number of upstream access token exchanges, labelled by result.",
	}, []string{"result"})

	PushRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mpesa_push_requests_total",
		Help: "Total number of STK push initiations, labelled by result.",
	}, []string{"result"})

	StatusResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mpesa_status_resolutions_total",
		Help: "Total number of status resolutions, labelled by source and status.",
	}, []string{"source", "status"})

	CallbacksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mpesa_callbacks_received_total",
		Help: "Total number of webhook deliveries, labelled by outcome.",
	}, []string{"outcome"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mpesa_rate_limited_total",
		Help: "Total number of push requests rejected by the rate limiter.",
	})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mpesa_upstream_request_duration_ms",
		Help:    "Upstream request latency in milliseconds, labelled by operation.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	}, []string{"operation"})

	StoreEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mpesa_store_entries",
		Help: "Current number of outcome records held in memory.",
	})

	StoreReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mpesa_store_reaped_total",
		Help: "Total number of expired outcome records removed by the reaper.",
	})
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
	ResultInvalid  = "invalid"
)
