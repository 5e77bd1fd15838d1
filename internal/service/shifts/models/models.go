package models

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// CreateShiftRequest запрос на создание смены
type CreateShiftRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ListShiftsRequest период, за который нужны смены (включительно)
type ListShiftsRequest struct {
	From *time.Time
	To   *time.Time
}

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ShiftListResponse список смен
type ShiftListResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
	Total  int             `json:"total"`
}

// FromDomainShift конвертирует domain модель в response
func FromDomainShift(s *domain.Shift) *ShiftResponse {
	duration, _ := s.DurationMinutes()
	return &ShiftResponse{
		ID:              s.ID,
		Date:            domain.DayKey(s.Date),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		DurationMinutes: duration,
		CreatedAt:       s.CreatedAt,
	}
}

// FromDomainShiftList конвертирует список domain моделей в response
func FromDomainShiftList(list []*domain.Shift) *ShiftListResponse {
	out := make([]ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *FromDomainShift(s))
	}
	return &ShiftListResponse{Shifts: out, Total: len(out)}
}
