package domain

import "time"

// Даты в системе хранятся как календарный день в UTC (полночь UTC).
// Вся группировка по дням идёт только через DayKey, чтобы не зависеть от локальной таймзоны.

// DayKey возвращает ключ календарного дня "YYYY-MM-DD" в UTC
func DayKey(date time.Time) string {
	return date.UTC().Format(DateFormat)
}

// NormalizeDate обрезает время до полуночи UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate парсит дату "YYYY-MM-DD" как полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// IsDateInPast проверяет, что календарный день date раньше дня now
func IsDateInPast(date, now time.Time) bool {
	return NormalizeDate(date).Before(NormalizeDate(now))
}
