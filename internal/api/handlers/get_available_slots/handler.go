package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceHours = "некорректная длительность уборки"
	msgScheduleUnavailable = "расписание временно недоступно"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (optional, YYYY-MM-DD), serviceHours (optional, по умолчанию 2)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{Date: date}

	if raw := r.URL.Query().Get("serviceHours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid serviceHours %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidServiceHours)
			return
		}
		req.ServiceHours = &hours
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceHours)

		case errors.Is(err, getAvailableSlots.ErrDataIntegrity):
			h.logger.Error("GET /availability - Stored schedule is inconsistent: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgScheduleUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots of %d minutes from %s (cached=%t)",
		len(result.Slots), result.RequestedMinutes, domain.DayKey(result.From), result.Cached)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
