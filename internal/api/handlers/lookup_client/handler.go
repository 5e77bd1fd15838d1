package lookup_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients"
)

const (
	msgMissingEmail   = "email обязателен"
	msgClientNotFound = "клиент не найден"
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

// Handle GET /api/v1/clients/lookup?email=
// Вернувшийся клиент находит свою анкету, чтобы записаться без повторного заполнения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /clients/lookup - Missing email")
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	client, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrClientNotFound):
			h.logger.Warn("GET /clients/lookup - Client not found")
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, clients.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingEmail)

		default:
			h.logger.Error("GET /clients/lookup - Failed to find client: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/lookup - Client found: client_id=%d", client.ID)
	handlers.RespondJSON(w, http.StatusOK, client)
}
