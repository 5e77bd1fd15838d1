package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/availability"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Shift, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// Engine движок расчёта свободных слотов
type Engine interface {
	ComputeAvailableSlots(shifts []*domain.Shift, appointments []*domain.Appointment, requestedMinutes int) ([]domain.Slot, error)
	Rules() availability.Rules
}

// SlotsCache кеш рассчитанных слотов, разбитый на поколения
type SlotsCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, date time.Time, minutes int) ([]domain.Slot, bool, error)
	Set(ctx context.Context, gen int64, date time.Time, minutes int, slots []domain.Slot) error
}

// Metrics метрики расчёта доступности
type Metrics interface {
	ObserveAvailability(slots int, cached bool, duration time.Duration)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
