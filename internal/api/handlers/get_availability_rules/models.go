package get_availability_rules

import (
	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

// RulesResponse HTTP response model
type RulesResponse struct {
	TravelBufferMinutes int     `json:"travelBufferMinutes"`
	StepMinutes         int     `json:"stepMinutes"`
	AnchorMinMinutes    int     `json:"anchorMinMinutes"`
	IgnoreShiftEdgeGaps bool    `json:"ignoreShiftEdgeGaps"`
	LookaheadDays       int     `json:"lookaheadDays"`
	DefaultServiceHours float64 `json:"defaultServiceHours"`
}

func FromUseCaseResponse(r *getAvailableSlots.RulesResponse) *RulesResponse {
	return &RulesResponse{
		TravelBufferMinutes: r.TravelBufferMinutes,
		StepMinutes:         r.StepMinutes,
		AnchorMinMinutes:    r.AnchorMinMinutes,
		IgnoreShiftEdgeGaps: r.IgnoreShiftEdgeGaps,
		LookaheadDays:       r.LookaheadDays,
		DefaultServiceHours: r.DefaultServiceHours,
	}
}
