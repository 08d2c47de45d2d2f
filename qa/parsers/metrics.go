package parsers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var tablesRead = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "qaplotter_tables_read_total",
	Help: "Exports read, by outcome",
}, []string{"outcome"})

var rowsRead = promauto.NewCounter(prometheus.CounterOpts{
	Name: "qaplotter_rows_read_total",
	Help: "Rows read from exports",
})
