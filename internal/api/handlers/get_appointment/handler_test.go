package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "Pending"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"found", "21", nil, http.StatusOK},
		{"bad id", "x1", nil, http.StatusBadRequest},
		{"not found", "21", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", "21", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"appointmentId": tt.id})
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"id":21`)
			}
		})
	}
}
