package create_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidShift       = "некорректные дата или время смены, ожидается YYYY-MM-DD и HH:MM, начало раньше конца"
	msgDateInPast         = "нельзя создать смену на прошедшую дату"
	msgShiftOverlap       = "смена пересекается с существующей сменой этого дня"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shifts (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetAdminID(r.Context())

	var req models.CreateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	shift, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, shifts.ErrInvalidInput):
			h.logger.Warn("POST /shifts - Invalid shift: %v", err)
			handlers.RespondBadRequest(w, msgInvalidShift)

		case errors.Is(err, shifts.ErrDateInPast):
			h.logger.Warn("POST /shifts - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, shifts.ErrShiftOverlap):
			h.logger.Warn("POST /shifts - Overlap: date=%s, %s-%s", req.Date, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgShiftOverlap)

		default:
			h.logger.Error("POST /shifts - Failed to create shift: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shifts - Shift created: shift_id=%d, date=%s, admin_id=%d", shift.ID, shift.Date, adminID)
	handlers.RespondJSON(w, http.StatusCreated, shift)
}
