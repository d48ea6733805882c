package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrCapture камера не открылась или не отдала кадр.
	ErrCapture = errors.New("capture failed")

	// ErrEncode кадр не удалось сжать для отправки.
	ErrEncode = errors.New("encode failed")

	// ErrExtraction удалённая модель недоступна или вернула ошибку.
	ErrExtraction = errors.New("extraction failed")

	// ErrParseFailure в ответе модели нет подстроки с датой.
	ErrParseFailure = errors.New("expiry date not found")

	// ErrInvalidMonth найденный месяц вне диапазона 1..12.
	ErrInvalidMonth = errors.New("invalid month value")
)

// ParseError описывает неудачный разбор текста экстрактора.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse expiry from %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
