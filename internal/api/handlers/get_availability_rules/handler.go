package get_availability_rules

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
)

type Handler struct {
	rules RulesProvider
}

func NewHandler(rules RulesProvider) *Handler {
	return &Handler{rules: rules}
}

// Handle GET /api/v1/availability/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(h.rules.Rules()))
}
