package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64            // ID клиента
	ServiceType    string           // Тип уборки ("Standard Clean", "Deep Clean", ...)
	AddOns         []string         // Дополнительные услуги
	QuotedPrice    float64          // Цена из калькулятора
	EstimatedHours float64          // Оценка длительности; 0 - считается по времени слота
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Начало слота
	EndTime        types.TimeString // Конец слота
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	ClientID       int64
	ServiceType    string
	AddOns         []string
	QuotedPrice    float64
	EstimatedHours float64
	Status         string
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	SlotID         string // ID слота, в который попала запись
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
