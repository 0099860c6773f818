package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DetectionsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optix",
		Name:      "detections_stored_total",
		Help:      "Total number of detection events persisted",
	}, []string{"event_type"})

	Reclassifications = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optix",
		Name:      "reclassifications_total",
		Help:      "Total number of logs reclassified from unwanted to family",
	})

	IdentitiesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optix",
		Name:      "identities_collected_total",
		Help:      "Total number of orphaned person identities garbage-collected",
	})

	NetworkReplacements = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optix",
		Name:      "network_replacements_total",
		Help:      "Total number of camera network replace operations",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "optix",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "optix",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
