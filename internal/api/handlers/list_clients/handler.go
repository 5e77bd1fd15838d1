package list_clients

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
)

type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients (admin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, _ := middleware.GetAdminID(r.Context())

	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /clients - Failed to list clients: admin_id=%d, error=%v", adminID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients - %d clients returned to admin_id=%d", list.Total, adminID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
