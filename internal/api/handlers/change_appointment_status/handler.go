package change_appointment_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "нельзя перевести запись в этот статус из текущего"
)

// Action действие над записью: confirm, cancel, complete
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

type Handler struct {
	service AppointmentService
	action  Action
	logger  Logger
}

func NewHandler(service AppointmentService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/{confirm|cancel|complete} (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/%s - Invalid appointment ID: %v", h.action, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}
	adminID, _ := middleware.GetAdminID(r.Context())

	appointment, err := h.apply(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/%s - Appointment not found: appointment_id=%d", h.action, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/%s - Invalid transition: appointment_id=%d, error=%v",
				h.action, appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/%s - Failed: appointment_id=%d, error=%v", h.action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/%s - Status changed: appointment_id=%d, status=%s, admin_id=%d",
		h.action, appointmentID, appointment.Status, adminID)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}

func (h *Handler) apply(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	switch h.action {
	case ActionConfirm:
		return h.service.Confirm(ctx, id)
	case ActionCancel:
		return h.service.Cancel(ctx, id)
	case ActionComplete:
		return h.service.Complete(ctx, id)
	default:
		return nil, errors.New("unknown appointment action: " + string(h.action))
	}
}
