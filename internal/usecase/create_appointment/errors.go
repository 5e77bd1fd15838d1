package create_appointment

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: appointment date is in the past")

	// ErrSlotNotAvailable возвращается, когда выбранное время уже не входит в свободные слоты
	// (заняли параллельно, удалили смену и т.п.). Клиенту стоит обновить список слотов
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
