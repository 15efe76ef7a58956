// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 2b7d4f9c-6e1a-4b8d-9c5f-3e8a1d6b4f27

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Name:      "searches_total",
		Help:      "Total number of catalog searches by entity kind and pipeline",
	}, []string{"kind", "pipeline"})
	searchesFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Name:      "searches_failed_total",
		Help:      "Total number of failed catalog searches by entity kind",
	}, []string{"kind"})
	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockroom",
		Name:      "search_duration_seconds",
		Help:      "Histogram of catalog search durations by entity kind",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms up to ~4s
	}, []string{"kind"})
	searchResults = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockroom",
		Name:      "search_results",
		Help:      "Histogram of result counts per search by entity kind",
		Buckets:   prometheus.LinearBuckets(0, 5, 11),
	}, []string{"kind"})

	productsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "stockroom",
		Name:      "products_total",
		Help:      "Current total number of products across all shops",
	})
	categoriesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "stockroom",
		Name:      "categories_total",
		Help:      "Current total number of categories across all shops",
	})
)

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			searchesTotal, searchesFailed, searchDuration, searchResults,
			productsGauge, categoriesGauge,
		)
	})
}

// ObserveSearch records one completed search call.
func ObserveSearch(kind, pipeline string, resultCount int, elapsed time.Duration) {
	searchesTotal.WithLabelValues(kind, pipeline).Inc()
	searchDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	searchResults.WithLabelValues(kind).Observe(float64(resultCount))
}

// ObserveSearchFailure records one failed search call.
func ObserveSearchFailure(kind string) {
	searchesFailed.WithLabelValues(kind).Inc()
}

// SetCatalogSize updates the catalog size gauges.
func SetCatalogSize(products, categories int) {
	productsGauge.Set(float64(products))
	categoriesGauge.Set(float64(categories))
}
