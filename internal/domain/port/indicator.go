package port

import "context"

// IndicatorLine одна двоичная линия индикации (светодиод, реле, топик)
type IndicatorLine interface {
	// Name имя линии из конфигурации
	Name() string

	// Set включает или выключает линию. Выключение идемпотентно и
	// допустимо для линии, которая ни разу не включалась.
	Set(ctx context.Context, on bool) error
}

// IndicatorDriver выдаёт линии по имени и владеет их ресурсами
type IndicatorDriver interface {
	Line(name string) (IndicatorLine, error)
	Close() error
}
