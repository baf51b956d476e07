package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AnchorsProcessed *prometheus.CounterVec
	UpstreamErrors   *prometheus.CounterVec
	RequestSeconds   *prometheus.HistogramVec
	TilesetsResolved prometheus.Counter
	ActiveWorkers    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		AnchorsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meshgrid_anchors_processed_total",
			Help: "Total number of processed search anchors.",
		}, []string{"status"}),
		UpstreamErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meshgrid_upstream_api_errors_total",
			Help: "Total number of errors received from upstream APIs.",
		}, []string{"upstream"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meshgrid_upstream_request_duration_seconds",
			Help:    "Duration of requests to upstream APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"upstream"}),
		TilesetsResolved: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meshgrid_tilesets_resolved_total",
			Help: "Total number of tileset URLs resolved from mesh codes.",
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meshgrid_active_workers",
			Help: "Current number of active workers resolving anchors.",
		}),
	}
}
