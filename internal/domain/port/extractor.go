package port

import "context"

// ExtractionRequest запрос к удалённой мультимодальной модели.
type ExtractionRequest struct {
	Image       []byte  // сжатое изображение
	MimeType    string  // например image/jpeg
	Instruction string  // фиксированная инструкция для модели
	Temperature float64 // 0 без сэмплирования
}

// ExpiryExtractor интерфейс извлечения срока годности с изображения
type ExpiryExtractor interface {
	// Extract отправляет изображение и инструкцию, возвращает текст ответа
	Extract(ctx context.Context, req ExtractionRequest) (string, error)
}
