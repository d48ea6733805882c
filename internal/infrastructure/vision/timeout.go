package vision

import (
	"context"
	"image"
	"time"

	"expiry-scanner/internal/domain/port"
)

// DefaultReleaseGrace сколько после таймаута ждать, пока источник закроет поток.
const DefaultReleaseGrace = 2 * time.Second

// TimeoutSource ограничивает время захвата. OpenCV не умеет отменять чтение,
// поэтому захват идёт в отдельной горутине; поток закрывается внутри Capture
// источника. После таймаута Capture ещё до Grace ждёт этого закрытия; если
// чтение висит дольше, поток освобождается, когда чтение вернётся.
type TimeoutSource struct {
	Source  port.FrameSource
	Timeout time.Duration
	Grace   time.Duration
}

// WithTimeout оборачивает источник. Нулевой таймаут возвращает источник как есть.
func WithTimeout(src port.FrameSource, d time.Duration) port.FrameSource {
	if d <= 0 {
		return src
	}
	return &TimeoutSource{Source: src, Timeout: d, Grace: DefaultReleaseGrace}
}

type captureResult struct {
	img image.Image
	err error
}

// Capture снимает кадр не дольше Timeout.
func (s *TimeoutSource) Capture(ctx context.Context) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	done := make(chan captureResult, 1)
	go func() {
		img, err := s.Source.Capture(ctx)
		done <- captureResult{img: img, err: err}
	}()

	select {
	case res := <-done:
		return res.img, res.err
	case <-ctx.Done():
		if s.Grace > 0 {
			select {
			case <-done:
			case <-time.After(s.Grace):
			}
		}
		return nil, ctx.Err()
	}
}

var _ port.FrameSource = (*TimeoutSource)(nil)
