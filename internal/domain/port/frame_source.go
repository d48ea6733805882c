package port

import (
	"context"
	"image"
)

// FrameSource источник одного кадра с камеры
type FrameSource interface {
	// Capture открывает поток, читает ровно один кадр и освобождает поток
	// до возврата, в том числе при ошибке.
	Capture(ctx context.Context) (image.Image, error)
}

// ImageEncoder сжимает кадр для отправки в модель
type ImageEncoder interface {
	// Encode возвращает сжатое изображение
	Encode(img image.Image) ([]byte, error)

	// MimeType тип содержимого, который получается на выходе Encode
	MimeType() string
}
