package get_availability_rules

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

type staticRules getAvailableSlots.RulesResponse

func (s staticRules) Rules() *getAvailableSlots.RulesResponse {
	r := getAvailableSlots.RulesResponse(s)
	return &r
}

func TestHandle(t *testing.T) {
	h := NewHandler(staticRules{
		TravelBufferMinutes: 30,
		StepMinutes:         30,
		AnchorMinMinutes:    90,
		IgnoreShiftEdgeGaps: true,
		LookaheadDays:       30,
		DefaultServiceHours: 2,
	})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability/rules", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"travelBufferMinutes": 30,
		"stepMinutes": 30,
		"anchorMinMinutes": 90,
		"ignoreShiftEdgeGaps": true,
		"lookaheadDays": 30,
		"defaultServiceHours": 2
	}`, rec.Body.String())
}
