package vision

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"expiry-scanner/internal/domain/port"
)

// FileSource отдаёт кадр из файла на диске. Нужен для прогонов без камеры.
type FileSource struct {
	Path string
}

// NewFileSource создаёт источник, читающий изображение из path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Capture декодирует JPEG или PNG из файла.
func (s *FileSource) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamNotOpened, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrNoFrame, s.Path, err)
	}
	return img, nil
}

var _ port.FrameSource = (*FileSource)(nil)
