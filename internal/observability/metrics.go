package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

var (
	FacesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acquaint",
		Name:      "faces_detected_total",
		Help:      "Total number of faces returned by the extractor",
	}, []string{"operation"})

	FacesRecognized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acquaint",
		Name:      "faces_recognized_total",
		Help:      "Total number of faces matched to an acquaintance",
	})

	FacesUnknown = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "acquaint",
		Name:      "faces_unknown_total",
		Help:      "Total number of faces that matched nobody",
	})

	Enrollments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acquaint",
		Name:      "enrollments_total",
		Help:      "Enrollment attempts by outcome",
	}, []string{"outcome"})

	InferenceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "acquaint",
		Name:      "inference_duration_seconds",
		Help:      "Duration of face extraction calls",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "acquaint",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "acquaint",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)

// RecordRecognition counts the faces of one recognize call
func RecordRecognition(operation string, faces []domain.FaceResult) {
	FacesDetected.WithLabelValues(operation).Add(float64(len(faces)))
	for _, f := range faces {
		if f.Matched {
			FacesRecognized.Inc()
		} else {
			FacesUnknown.Inc()
		}
	}
}
