//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"

	"expiry-scanner/internal/domain/port"
)

// GoCVSource заглушка источника кадров (без OpenCV).
type GoCVSource struct {
	Address string
}

// NewGoCVSource создаёт источник-заглушку.
func NewGoCVSource(address string) *GoCVSource {
	return &GoCVSource{Address: address}
}

// Capture возвращает ошибку, если сборка без тега gocv.
func (s *GoCVSource) Capture(ctx context.Context) (image.Image, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.FrameSource = (*GoCVSource)(nil)
