package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// ErrInvalidTimeString базовая ошибка разбора строки времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// ParseError описывает строку, которую не удалось разобрать как "HH:MM"
type ParseError struct {
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("types: invalid time string %q: %s", e.Value, e.Reason)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrInvalidTimeString)
func (e *ParseError) Unwrap() error {
	return ErrInvalidTimeString
}

// TimeString время суток в формате "HH:MM" (локальное время рабочего дня, без таймзоны)
type TimeString string

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := ParseMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// FromMinutes форматирует количество минут от полуночи как "HH:MM"
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// ParseMinutes разбирает "HH:MM" в минуты от полуночи.
// Ровно две цифры до и после двоеточия; часы 0..23, минуты 0..59.
func ParseMinutes(s string) (int, error) {
	hourPart, minutePart, ok := strings.Cut(s, ":")
	if !ok {
		return 0, &ParseError{Value: s, Reason: "missing colon"}
	}

	hour, ok := parseDigits(hourPart)
	if !ok {
		return 0, &ParseError{Value: s, Reason: "hour must be two digits"}
	}
	minute, ok := parseDigits(minutePart)
	if !ok {
		return 0, &ParseError{Value: s, Reason: "minute must be two digits"}
	}

	if hour > 23 {
		return 0, &ParseError{Value: s, Reason: "hour out of range [0,23]"}
	}
	if minute > 59 {
		return 0, &ParseError{Value: s, Reason: "minute out of range [0,59]"}
	}

	return hour*60 + minute, nil
}

func parseDigits(s string) (int, bool) {
	if len(s) != 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	return ParseMinutes(string(t))
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// IsBefore сравнивает два времени. Некорректные значения сравниваются как строки.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return string(t) < string(other)
	}
	return a < b
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner. PostgreSQL отдаёт TIME как "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}

	if len(raw) > 5 && raw[5] == ':' {
		raw = raw[:5]
	}
	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
