package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// Request модели

// ListAppointmentsRequest фильтр списка записей в админке
type ListAppointmentsRequest struct {
	Status   *string    `json:"status,omitempty"`
	From     *time.Time `json:"from,omitempty"` // Начало периода (включительно)
	To       *time.Time `json:"to,omitempty"`   // Конец периода (включительно)
	ClientID *int64     `json:"clientId,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate: r.From,
		EndDate:   r.To,
		ClientID:  r.ClientID,
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return filter, fmt.Errorf("period end %s is before start %s",
			r.To.Format(domain.DateFormat), r.From.Format(domain.DateFormat))
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID             int64     `json:"id"`
	ClientID       int64     `json:"clientId"`
	ServiceType    string    `json:"serviceType"`
	AddOns         []string  `json:"addOns"`
	QuotedPrice    float64   `json:"quotedPrice"`
	EstimatedHours float64   `json:"estimatedHours"`
	Status         string    `json:"status"`
	Date           string    `json:"date"`      // "2025-10-15"
	StartTime      string    `json:"startTime"` // "10:00"
	EndTime        string    `json:"endTime"`   // "12:00"
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	addOns := a.AddOns
	if addOns == nil {
		addOns = []string{}
	}

	return &AppointmentResponse{
		ID:             a.ID,
		ClientID:       a.ClientID,
		ServiceType:    a.ServiceType,
		AddOns:         addOns,
		QuotedPrice:    a.QuotedPrice,
		EstimatedHours: a.EstimatedHours,
		Status:         string(a.Status),
		Date:           domain.DayKey(a.Date),
		StartTime:      a.StartTime.String(),
		EndTime:        a.EndTime.String(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}
