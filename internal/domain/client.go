package domain

import "time"

// Client клиент клининговой компании (заполняется из калькулятора стоимости)
type Client struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	Address         string
	SquareFootage   int
	Bedrooms        int
	Bathrooms       float64
	AdditionalRooms int // кабинеты, игровые и т.п.
	HasPets         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
