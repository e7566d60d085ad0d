package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog and derivation Prometheus metrics.
var (
	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "partdex",
			Name:      "catalog_records",
			Help:      "Number of usable records in the current catalog snapshot",
		},
	)

	CatalogSkippedLines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "partdex",
			Name:      "catalog_skipped_lines",
			Help:      "Number of malformed lines skipped while loading the current snapshot",
		},
	)

	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts",
		},
		[]string{"status"}, // "ok" / "error" / "empty"
	)

	ConnectionDerivationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partdex",
			Name:      "connection_derivations_total",
			Help:      "Connection sizes derived for returned or enriched records, by deciding stage",
		},
		[]string{"source"}, // explicit / platform / text / unknown
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers catalog and derivation metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(CatalogSkippedLines)
	prometheus.MustRegister(CatalogLoadsTotal)
	prometheus.MustRegister(ConnectionDerivationsTotal)
	catalogMetricsRegistered = true
}
