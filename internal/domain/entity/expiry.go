package entity

import (
	"fmt"
	"time"
)

// ConservativeDay день месяца, который подставляется в распознанную дату.
// На упаковке гарантированно есть только месяц и год.
const ConservativeDay = 28

// ParsedExpiry срок годности, извлечённый из ответа модели.
type ParsedExpiry struct {
	Year  int // год, четыре цифры как в тексте
	Month int // месяц, 1..12
	Day   int // всегда ConservativeDay
}

// Time возвращает дату срока годности в UTC на полночь.
func (e ParsedExpiry) Time() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
}

// String форматирует дату как YYYY-MM-DD.
func (e ParsedExpiry) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// ParseExpiry ищет в тексте первую подстроку вида M/YYYY или MM/YYYY.
// Берётся только первое совпадение, остальные кандидаты игнорируются.
func ParseExpiry(text string) (ParsedExpiry, error) {
	month, year, ok := scanMonthYear(text)
	if !ok {
		return ParsedExpiry{}, &ParseError{Text: text, Err: ErrParseFailure}
	}
	if month < 1 || month > 12 {
		return ParsedExpiry{}, &ParseError{Text: text, Err: fmt.Errorf("%w: %d", ErrInvalidMonth, month)}
	}

	return ParsedExpiry{Year: year, Month: month, Day: ConservativeDay}, nil
}

// scanMonthYear проходит по тексту слева направо. На каждой позиции сначала
// пробуем месяц из двух цифр, потом из одной.
func scanMonthYear(text string) (month, year int, ok bool) {
	for start := 0; start < len(text); start++ {
		for width := 2; width >= 1; width-- {
			m, ok := digitsAt(text, start, width)
			if !ok {
				continue
			}
			slash := start + width
			if slash >= len(text) || text[slash] != '/' {
				continue
			}
			y, ok := digitsAt(text, slash+1, 4)
			if !ok {
				continue
			}
			return m, y, true
		}
	}
	return 0, 0, false
}

// digitsAt читает ровно n ASCII-цифр начиная с позиции from.
func digitsAt(text string, from, n int) (int, bool) {
	if from+n > len(text) {
		return 0, false
	}
	value := 0
	for i := from; i < from+n; i++ {
		c := text[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*10 + int(c-'0')
	}
	return value, true
}
