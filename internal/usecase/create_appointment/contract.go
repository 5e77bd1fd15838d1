package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Shift, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// Engine движок расчёта свободных слотов
type Engine interface {
	ComputeAvailableSlots(shifts []*domain.Shift, appointments []*domain.Appointment, requestedMinutes int) ([]domain.Slot, error)
}

// AvailabilityCache кеш свободных слотов
type AvailabilityCache interface {
	Invalidate(ctx context.Context) error
}

// Metrics метрики бронирования
type Metrics interface {
	IncBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
