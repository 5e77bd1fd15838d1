package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// ErrInvalidTimeFormat возвращается, если строка не соответствует формату H:MM или HH:MM
var ErrInvalidTimeFormat = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM" (без даты и таймзоны)
// Хранится в БД как TIME, в API передаётся как строка
type TimeString string

// NewTimeStringFromString парсит строку вида "9:00" или "09:00" и нормализует её к "09:00"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// NewTimeStringFromMinutes создаёт время из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeFormat, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)), nil
}

// NewTimeString берёт время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// IsBefore сравнивает два времени. Некорректное время считается равным полуночи.
func (t TimeString) IsBefore(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a < b
}

// IsAfter сравнивает два времени. Некорректное время считается равным полуночи.
func (t TimeString) IsAfter(other TimeString) bool {
	a, _ := t.Minutes()
	b, _ := other.Minutes()
	return a > b
}

// AddMinutes возвращает время, сдвинутое на n минут (в пределах одних суток)
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes + n)
}

// Scan реализует sql.Scanner
// lib/pq отдаёт колонку TIME как time.Time (дата 0000-01-01), текстовые колонки как string/[]byte
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// "09:00:00" -> "09:00"
	if strings.Count(s, ":") == 2 {
		s = s[:strings.LastIndex(s, ":")]
	}
	parsed, err := NewTimeStringFromString(s)
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

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hh, mm := parts[0], parts[1]
	if len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, _ := strconv.Atoi(hh)
	minutes, _ := strconv.Atoi(mm)
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hours*minutesPerHour + minutes, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
