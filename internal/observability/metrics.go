package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faceline",
		Name:      "frames_processed_total",
		Help:      "Total number of job frames processed",
	}, []string{"job_id"})

	FacesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faceline",
		Name:      "faces_detected_total",
		Help:      "Total number of faces detected",
	}, []string{"job_id"})

	FacesDeduped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faceline",
		Name:      "faces_deduped_total",
		Help:      "Total number of face detections suppressed as within-burst repeats",
	}, []string{"job_id"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "faceline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"stage"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "faceline",
		Name:      "queue_depth",
		Help:      "Number of pending detection jobs in queue",
	})

	CascadeCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "faceline",
		Name:      "cascade_cache_size",
		Help:      "Number of cascades currently held in the in-process registry cache",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "faceline",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "faceline",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)

// Pipeline stage labels for StageDuration, matching the core operations
// named in spec.md §4: grayscale conversion, integral-image
// construction, the multi-scale scan, merge, eye localization, and the
// geometry normalizer.
const (
	StageGrayscale = "grayscale"
	StageIntegral  = "integral"
	StageScan      = "scan"
	StageMerge     = "merge"
	StageEyes      = "eyes"
	StageNormalize = "normalize"
)
