package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "qaplotter_query_duration_seconds",
	Help:    "Duration of SQL queries over field tables",
	Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
})
