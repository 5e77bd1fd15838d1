package get_available_slots

import (
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "11:00"
	ShiftID   int64  `json:"shiftId"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	From             string         `json:"from"`
	To               string         `json:"to"`
	RequestedMinutes int            `json:"requestedMinutes"`
	Slots            []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:        s.ID,
			Date:      domain.DayKey(s.Date),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			ShiftID:   s.ShiftID,
		})
	}

	return &AvailableSlotsResponse{
		From:             domain.DayKey(resp.From),
		To:               domain.DayKey(resp.To),
		RequestedMinutes: resp.RequestedMinutes,
		Slots:            slots,
	}
}
