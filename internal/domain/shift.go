package domain

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Shift рабочее окно исполнителя в конкретный день
type Shift struct {
	ID        int64
	Date      time.Time // календарный день, полночь UTC
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes длительность смены; ошибка, если время в смене некорректно
func (s *Shift) DurationMinutes() (int, error) {
	start, err := s.StartTime.Minutes()
	if err != nil {
		return 0, err
	}
	end, err := s.EndTime.Minutes()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
