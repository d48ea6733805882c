package port

import "context"

// Notifier отправляет строку с итогом проверки оператору
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
