package change_appointment_status

import (
	"context"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id int64) (*models.AppointmentResponse, error)
	Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error)
	Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
