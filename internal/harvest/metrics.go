package harvest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalRequests tracks the number of HTTP transport attempts issued.
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_requests_total",
		Help: "The total number of HTTP attempts sent.",
	})
	// TotalRequestErrors tracks attempts that failed below the HTTP layer.
	TotalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_request_errors_total",
		Help: "The total number of failed HTTP attempts.",
	})
	// TotalSaved tracks hosts whose response body was persisted.
	TotalSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_saved_total",
		Help: "The total number of response bodies written to disk.",
	})
	// TotalSkippedFresh tracks hosts skipped by the grace-period check.
	TotalSkippedFresh = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_skipped_fresh_total",
		Help: "The total number of hosts skipped because their output file was still fresh.",
	})
	// TotalAborted tracks hosts that ended without an output file.
	TotalAborted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_aborted_total",
		Help: "The total number of hosts aborted after transport or validation failure.",
	})
	// TotalRejectedLines tracks host-list lines that failed validation.
	TotalRejectedLines = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostharvest_rejected_lines_total",
		Help: "The total number of host list lines rejected by validation.",
	})
	// ActiveWorkers reports the number of currently occupied worker slots.
	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hostharvest_active_workers",
		Help: "The number of in-flight per-host fetch workers.",
	})
)
