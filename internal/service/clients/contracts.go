package clients

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
