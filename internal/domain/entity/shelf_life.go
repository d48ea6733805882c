package entity

import "time"

// ShelfLife итог классификации одного прогона
type ShelfLife string

const (
	ShelfLifeExpired      ShelfLife = "expired"       // срок истёк
	ShelfLifeExpiringSoon ShelfLife = "expiring_soon" // истекает в пределах порога
	ShelfLifeValid        ShelfLife = "valid"         // годен
	ShelfLifeUnparseable  ShelfLife = "unparseable"   // дату не удалось извлечь
)

// DefaultExpiringSoonDays порог "скоро истекает" в днях, включительно.
const DefaultExpiringSoonDays = 14

const secondsPerDay = 24 * 60 * 60

// DaysLeft считает разницу в календарных днях между сроком и сегодняшним днём.
// Время суток у today отбрасывается в его собственной таймзоне.
func DaysLeft(expiry ParsedExpiry, today time.Time) int {
	y, m, d := today.Date()
	todayUTC := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// Через Unix-секунды: time.Duration насыщается примерно на 292 годах.
	return int((expiry.Time().Unix() - todayUTC.Unix()) / secondsPerDay)
}

// Classify относит срок годности к одной из трёх групп.
func Classify(expiry ParsedExpiry, today time.Time, soonDays int) ShelfLife {
	days := DaysLeft(expiry, today)
	switch {
	case days < 0:
		return ShelfLifeExpired
	case days <= soonDays:
		return ShelfLifeExpiringSoon
	default:
		return ShelfLifeValid
	}
}
