package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCanceled  AppointmentStatus = "Canceled"
)

// ActiveStatuses статусы, которые занимают время в календаре
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// allowedTransitions допустимые переходы статусов
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

// ParseAppointmentStatus конвертирует строку в статус
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return status, nil
}

// IsValid returns true for known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsActive returns true if the appointment blocks time in the calendar
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo returns true if the status may change to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a booked cleaning job
type Appointment struct {
	ID             int64
	ClientID       int64
	ServiceType    string
	AddOns         []string
	QuotedPrice    float64
	EstimatedHours float64
	Status         AppointmentStatus
	Date           time.Time // календарный день, полночь UTC
	StartTime      types.TimeString
	EndTime        types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActive returns true if the appointment blocks time in the calendar
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AppointmentsFilter фильтр для списка записей в админке
type AppointmentsFilter struct {
	Status    *AppointmentStatus // nil - все статусы
	StartDate *time.Time         // Начало периода (включительно)
	EndDate   *time.Time         // Конец периода (включительно)
	ClientID  *int64
}
