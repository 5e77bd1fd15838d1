package admin_login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

type fakeAuth struct {
	err error
}

func (f *fakeAuth) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{ID: 1, Email: req.Email, Token: "signed", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func login(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(body)))
	return rec
}

func TestHandle_Success(t *testing.T) {
	rec := login(NewHandler(&fakeAuth{}, logger.NewNop()), `{"email":"owner@example.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"broken body", `not json`, nil, http.StatusBadRequest},
		{"missing fields", `{}`, auth.ErrInvalidInput, http.StatusBadRequest},
		{"wrong password", `{"email":"a@b.c","password":"x"}`, auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"internal", `{"email":"a@b.c","password":"x"}`, auth.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(NewHandler(&fakeAuth{err: tt.err}, logger.NewNop()), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
