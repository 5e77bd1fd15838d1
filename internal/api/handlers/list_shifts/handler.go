package list_shifts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/shifts/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod = "конец периода раньше начала"
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

// Handle GET /api/v1/shifts?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /shifts - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /shifts - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.List(r.Context(), &models.ListShiftsRequest{From: from, To: to})
	if err != nil {
		if errors.Is(err, shifts.ErrInvalidInput) {
			h.logger.Warn("GET /shifts - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		h.logger.Error("GET /shifts - Failed to list shifts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /shifts - %d shifts returned", list.Total)
	handlers.RespondJSON(w, http.StatusOK, list)
}
