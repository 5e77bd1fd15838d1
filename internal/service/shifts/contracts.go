package shifts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
	GetByID(ctx context.Context, id int64) (*domain.Shift, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Shift, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	HasActiveOnDate(ctx context.Context, date time.Time) (bool, error)
}

// AvailabilityCache кеш свободных слотов
type AvailabilityCache interface {
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
