package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

var (
	SimulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salarysim_simulations_total",
			Help: "Total number of simulation runs by outcome",
		},
		[]string{"outcome"},
	)

	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "salarysim_simulation_duration_seconds",
			Help:    "Duration of a resample and summarize run in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salarysim_cache_lookups_total",
			Help: "Memo cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	DatasetRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "salarysim_dataset_records",
			Help: "Number of salary records in the loaded dataset",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salarysim_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salarysim_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
