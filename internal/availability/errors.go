package availability

import "errors"

var (
	// ErrMalformedTime возвращается, если в сменах или записях время не в формате H:MM/HH:MM.
	// Это ошибка целостности данных, а не пользовательского ввода.
	ErrMalformedTime = errors.New("availability: malformed time in stored data")

	// ErrInvalidRange возвращается, если время начала не раньше времени окончания
	ErrInvalidRange = errors.New("availability: start time is not before end time")

	// ErrInvalidRules возвращается при некорректных параметрах движка
	ErrInvalidRules = errors.New("availability: invalid engine rules")
)
