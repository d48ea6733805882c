package vision

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"

	"expiry-scanner/internal/domain/port"
)

// DefaultJPEGQuality качество сжатия по умолчанию.
const DefaultJPEGQuality = 90

// JPEGEncoder сжимает кадр в JPEG.
type JPEGEncoder struct {
	Quality int
}

// NewJPEGEncoder создаёт кодировщик. Качество вне 1..100 заменяется значением по умолчанию.
func NewJPEGEncoder(quality int) *JPEGEncoder {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &JPEGEncoder{Quality: quality}
}

// Encode возвращает байты JPEG.
func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, errors.New("empty image")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MimeType тип результата Encode.
func (e *JPEGEncoder) MimeType() string {
	return "image/jpeg"
}

var _ port.ImageEncoder = (*JPEGEncoder)(nil)
