package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	createAppointment "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID       int64    `json:"clientId"`
	ServiceType    string   `json:"serviceType"`
	AddOns         []string `json:"addOns,omitempty"`
	QuotedPrice    float64  `json:"quotedPrice"`
	EstimatedHours float64  `json:"estimatedHours,omitempty"`
	Date           string   `json:"date"`      // "2025-10-15"
	StartTime      string   `json:"startTime"` // "10:30"
	EndTime        string   `json:"endTime"`   // "12:30"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64    `json:"id"`
	ClientID       int64    `json:"clientId"`
	ServiceType    string   `json:"serviceType"`
	AddOns         []string `json:"addOns"`
	QuotedPrice    float64  `json:"quotedPrice"`
	EstimatedHours float64  `json:"estimatedHours"`
	Status         string   `json:"status"`
	Date           string   `json:"date"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	SlotID         string   `json:"slotId"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createAppointment.Request{
		ClientID:       r.ClientID,
		ServiceType:    r.ServiceType,
		AddOns:         r.AddOns,
		QuotedPrice:    r.QuotedPrice,
		EstimatedHours: r.EstimatedHours,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	addOns := resp.AddOns
	if addOns == nil {
		addOns = []string{}
	}
	return &AppointmentResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		ServiceType:    resp.ServiceType,
		AddOns:         addOns,
		QuotedPrice:    resp.QuotedPrice,
		EstimatedHours: resp.EstimatedHours,
		Status:         resp.Status,
		Date:           domain.DayKey(resp.Date),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		SlotID:         resp.SlotID,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
