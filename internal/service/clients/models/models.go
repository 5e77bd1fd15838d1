package models

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// CreateClientRequest данные из калькулятора стоимости
type CreateClientRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	SquareFootage   int     `json:"squareFootage"`
	Bedrooms        int     `json:"bedrooms"`
	Bathrooms       float64 `json:"bathrooms"`
	AdditionalRooms int     `json:"additionalRooms"`
	HasPets         bool    `json:"hasPets"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateClientRequest) ToDomain() *domain.Client {
	return &domain.Client{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Address:         r.Address,
		SquareFootage:   r.SquareFootage,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		AdditionalRooms: r.AdditionalRooms,
		HasPets:         r.HasPets,
	}
}

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	SquareFootage   int       `json:"squareFootage"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       float64   `json:"bathrooms"`
	AdditionalRooms int       `json:"additionalRooms"`
	HasPets         bool      `json:"hasPets"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ClientListResponse список клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}

// FromDomainClient конвертирует domain модель в response
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		SquareFootage:   c.SquareFootage,
		Bedrooms:        c.Bedrooms,
		Bathrooms:       c.Bathrooms,
		AdditionalRooms: c.AdditionalRooms,
		HasPets:         c.HasPets,
		CreatedAt:       c.CreatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в response
func FromDomainClientList(list []*domain.Client) *ClientListResponse {
	out := make([]ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *FromDomainClient(c))
	}
	return &ClientListResponse{Clients: out, Total: len(out)}
}
