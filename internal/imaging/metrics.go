package imaging

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transformsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_transforms_total",
			Help: "Total number of image transforms by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	transformDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_transform_duration_seconds",
			Help:    "Image transform duration in seconds by kind.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

// ObserveTransform records one transform's duration and outcome.
func ObserveTransform(kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	transformsTotal.WithLabelValues(kind, status).Inc()
	transformDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
