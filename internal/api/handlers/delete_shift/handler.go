package delete_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts"
)

const (
	msgInvalidShiftID   = "некорректный ID смены"
	msgShiftNotFound    = "смена не найдена"
	msgHasAppointments  = "на этот день есть активные записи, сначала отмените их"
	msgShiftDeletedText = "смена удалена"
)

// DeleteShiftResponse HTTP response model
type DeleteShiftResponse struct {
	Message string `json:"message"`
}

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

// Handle DELETE /api/v1/shifts/{shiftId} (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shiftID, err := handlers.PathInt64(r, "shiftId")
	if err != nil {
		h.logger.Warn("DELETE /shifts/{id} - Invalid shift ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShiftID)
		return
	}
	adminID, _ := middleware.GetAdminID(r.Context())

	if err := h.service.Delete(r.Context(), shiftID); err != nil {
		switch {
		case errors.Is(err, shifts.ErrShiftNotFound):
			h.logger.Warn("DELETE /shifts/{id} - Shift not found: shift_id=%d", shiftID)
			handlers.RespondNotFound(w, msgShiftNotFound)

		case errors.Is(err, shifts.ErrShiftHasAppointments):
			h.logger.Warn("DELETE /shifts/{id} - Shift has active appointments: shift_id=%d", shiftID)
			handlers.RespondConflict(w, msgHasAppointments)

		default:
			h.logger.Error("DELETE /shifts/{id} - Failed to delete shift: shift_id=%d, error=%v", shiftID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shifts/{id} - Shift deleted: shift_id=%d, admin_id=%d", shiftID, adminID)
	handlers.RespondJSON(w, http.StatusOK, DeleteShiftResponse{Message: msgShiftDeletedText})
}
