package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type PrometheusMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RateLimited     *prometheus.CounterVec
	AuthFailures    *prometheus.CounterVec
	ExtractDuration *prometheus.HistogramVec
	ExtractedItems  *prometheus.CounterVec
}

func NewMetrics() *PrometheusMetrics {
	return newMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewMetricsWith registers the collectors on reg instead of the default
// registry. Tests use it to get a fresh registry per service instance.
func NewMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	return newMetrics(promauto.With(reg))
}

func newMetrics(factory promauto.Factory) *PrometheusMetrics {
	return &PrometheusMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractapi_requests_total",
				Help: "Total HTTP requests served",
			},
			[]string{"endpoint", "code"},
		),
		RateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractapi_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
			[]string{},
		),
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractapi_auth_failures_total",
				Help: "Requests rejected at the authentication gate",
			},
			[]string{"reason"},
		),
		ExtractDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "extractapi_extraction_duration_seconds",
				Help: "Time taken to run the extraction rules",
			},
			[]string{"extraction_type"},
		),
		ExtractedItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractapi_extracted_items_total",
				Help: "Total items extracted, by result kind",
			},
			[]string{"kind"},
		),
	}
}

func StartNewMetricsServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Msgf("Metrics server starting on %s", addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
