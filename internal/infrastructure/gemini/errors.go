package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredential нет ни ключа API, ни учётных данных по умолчанию.
	ErrNoCredential = errors.New("gemini: no credential configured")

	// ErrEmptyResponse в ответе нет ни одного кандидата с содержимым.
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// APIError ответ API с кодом ошибки.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized true для 401 и 403.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
