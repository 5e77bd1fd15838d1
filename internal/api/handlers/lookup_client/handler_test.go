package lookup_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/clients/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakeService struct {
	byEmail map[string]*models.ClientResponse
	err     error
}

func (f *fakeService) GetByEmail(_ context.Context, email string) (*models.ClientResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byEmail[email]
	if !ok {
		return nil, clients.ErrClientNotFound
	}
	return c, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{byEmail: map[string]*models.ClientResponse{
		"jane@example.com": {ID: 3, Email: "jane@example.com"},
	}}

	tests := []struct {
		name       string
		target     string
		svc        ClientService
		wantStatus int
	}{
		{"found", "/api/v1/clients/lookup?email=jane@example.com", svc, http.StatusOK},
		{"unknown", "/api/v1/clients/lookup?email=bob@example.com", svc, http.StatusNotFound},
		{"missing email", "/api/v1/clients/lookup", svc, http.StatusBadRequest},
		{"db error", "/api/v1/clients/lookup?email=jane@example.com", &fakeService{err: clients.ErrInternal}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
