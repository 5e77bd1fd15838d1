package shifts

import "errors"

var (
	// ErrShiftNotFound возвращается, когда смена не найдена
	ErrShiftNotFound = errors.New("shift not found")

	// ErrShiftHasAppointments возвращается при удалении смены, на день которой есть активные записи
	ErrShiftHasAppointments = errors.New("shift has active appointments")

	// ErrShiftOverlap возвращается, когда новая смена пересекается с существующей в тот же день
	ErrShiftOverlap = errors.New("shift overlaps an existing shift")

	// ErrDateInPast возвращается при создании смены на прошедший день
	ErrDateInPast = errors.New("shift date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
