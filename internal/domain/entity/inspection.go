package entity

import (
	"fmt"
	"time"
)

// Inspection хранит итог одного прогона сканера.
type Inspection struct {
	RunID     string        // идентификатор прогона для логов
	RawText   string        // ответ экстрактора как есть
	Expiry    *ParsedExpiry // nil, если дату не удалось разобрать
	Today     time.Time     // дата, относительно которой считали срок
	DaysLeft  int           // дней до истечения, может быть отрицательным
	ShelfLife ShelfLife     // итоговая группа
	ParseErr  error         // причина ShelfLifeUnparseable
}

// Summary короткая строка статуса для оператора.
func (i *Inspection) Summary() string {
	switch i.ShelfLife {
	case ShelfLifeExpired:
		return fmt.Sprintf("EXPIRED: expiry %s, %d days ago", i.Expiry, -i.DaysLeft)
	case ShelfLifeExpiringSoon:
		return fmt.Sprintf("EXPIRING SOON: expiry %s, %d days left", i.Expiry, i.DaysLeft)
	case ShelfLifeValid:
		return fmt.Sprintf("VALID: expiry %s, %d days left", i.Expiry, i.DaysLeft)
	default:
		return fmt.Sprintf("UNPARSEABLE: could not read expiry date from %q", i.RawText)
	}
}
