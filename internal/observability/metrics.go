package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the reporting
// pipeline. Reports are short-lived batch runs, so everything is a plain
// counter scraped through the optional metrics listener.
type Metrics struct {
	YearsRequested   prometheus.Counter
	YearLoadFailures prometheus.Counter
	RecordsLoaded    prometheus.Counter
	RowsSkipped      prometheus.Counter
	LoadDuration     prometheus.Histogram

	// State map metrics.
	PointsPlotted  prometheus.Counter
	PointsExcluded prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		YearsRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "years_requested_total",
			Help:      "Total years requested across all aggregation calls.",
		}),
		YearLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "year_load_failures_total",
			Help:      "Total years skipped because their file was invalid, missing, or malformed.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "records_loaded_total",
			Help:      "Total accident rows loaded from year files.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "rows_skipped_total",
			Help:      "Total rows ignored during summarization for missing MONTH values.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars_report",
			Name:      "load_duration_seconds",
			Help:      "Duration of loading and parsing a single year file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PointsPlotted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "points_plotted_total",
			Help:      "Total accident locations retained for state map plotting.",
		}),
		PointsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars_report",
			Name:      "points_excluded_total",
			Help:      "Total accident locations dropped for sentinel or missing coordinates.",
		}),
	}

	prometheus.MustRegister(
		m.YearsRequested,
		m.YearLoadFailures,
		m.RecordsLoaded,
		m.RowsSkipped,
		m.LoadDuration,
		m.PointsPlotted,
		m.PointsExcluded,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		YearsRequested:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "years_requested_total"}),
		YearLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "year_load_failures_total"}),
		RecordsLoaded:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "records_loaded_total"}),
		RowsSkipped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "rows_skipped_total"}),
		LoadDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fars_report", Name: "load_duration_seconds"}),
		PointsPlotted:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "points_plotted_total"}),
		PointsExcluded:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fars_report", Name: "points_excluded_total"}),
	}
}
