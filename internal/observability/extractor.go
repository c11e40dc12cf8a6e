package observability

import (
	"context"
	"time"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/imagecodec"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

type instrumentedExtractor struct {
	next provider.Extractor
}

// InstrumentExtractor records call latency and outcome for every Detect call
func InstrumentExtractor(next provider.Extractor) provider.Extractor {
	return &instrumentedExtractor{next: next}
}

func (e *instrumentedExtractor) Detect(ctx context.Context, img *imagecodec.Raster) ([]provider.Detection, error) {
	start := time.Now()
	detections, err := e.next.Detect(ctx, img)

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case len(detections) == 0:
		status = "no_face"
	}
	InferenceDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	return detections, err
}
