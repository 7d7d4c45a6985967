// Package metrics holds the domain counters shared across layers. The HTTP
// request metrics live with the middleware that observes them; anything a
// use case or store client records goes through here instead, so those
// packages never depend on the transport.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_signups_total",
			Help: "Total number of waitlist submissions by result",
		},
		[]string{"result"},
	)

	catalogFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_fallbacks_total",
			Help: "Times the catalog served fallback or empty data because the store was unreachable",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

func RecordSignup(result string) {
	signupsTotal.WithLabelValues(result).Inc()
}

func RecordCatalogFallback() {
	catalogFallbacks.Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
