package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// GalleryEvents считает события сверки галерей по виду (images_added, allow_list_updated, ...)
	GalleryEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_events_total",
			Help: "Gallery reconcile and delete outcomes by event kind",
		},
		[]string{"kind"},
	)

	GalleryWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_writes_total",
			Help: "Persisted gallery and profile picture writes",
		},
		[]string{"target"},
	)

	AccessDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_access_decisions_total",
			Help: "Access policy decisions by operation and result",
		},
		[]string{"op", "result"},
	)

	GalleriesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "galleries_created_total",
			Help: "Lazily created galleries by type",
		},
		[]string{"type"},
	)
)
