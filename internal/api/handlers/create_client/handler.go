package create_client

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClientData  = "некорректные данные клиента"
	msgEmailTaken         = "клиент с таким email уже зарегистрирован"
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

// Handle POST /api/v1/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, clients.ErrInvalidInput):
			h.logger.Warn("POST /clients - Invalid client data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidClientData)

		case errors.Is(err, clients.ErrEmailTaken):
			h.logger.Warn("POST /clients - Email already registered")
			handlers.RespondConflict(w, msgEmailTaken)

		default:
			h.logger.Error("POST /clients - Failed to create client: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /clients - Client created: client_id=%d", client.ID)
	handlers.RespondJSON(w, http.StatusCreated, client)
}
