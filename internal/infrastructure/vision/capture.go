//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"expiry-scanner/internal/domain/port"
)

// GoCVSource читает один кадр из видеопотока через OpenCV.
type GoCVSource struct {
	Address string // URL потока или номер устройства ("0")
}

// NewGoCVSource создаёт источник кадров для адреса камеры.
func NewGoCVSource(address string) *GoCVSource {
	return &GoCVSource{Address: address}
}

// Capture открывает поток, читает кадр и сразу закрывает поток.
func (s *GoCVSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	capture, err := gocv.OpenVideoCapture(s.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStreamNotOpened, s.Address, err)
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return nil, fmt.Errorf("%w: %s", ErrStreamNotOpened, s.Address)
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := capture.Read(&mat); !ok || mat.Empty() {
		return nil, ErrNoFrame
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

var _ port.FrameSource = (*GoCVSource)(nil)
