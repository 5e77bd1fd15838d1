package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date         *time.Time // Начало окна; nil - сегодня
	ServiceHours *float64   // Длительность уборки в часах; nil - DefaultServiceHours
}

// Response модель ответа со списком свободных слотов
type Response struct {
	From             time.Time     // Первый день окна
	To               time.Time     // Последний день окна (включительно)
	RequestedMinutes int           // Длительность слота в минутах
	Slots            []domain.Slot // Слоты по дням и времени начала
	Cached           bool          // Результат взят из кеша
}

// RulesResponse параметры расчёта слотов, которые видит фронтенд
type RulesResponse struct {
	TravelBufferMinutes int
	StepMinutes         int
	AnchorMinMinutes    int
	IgnoreShiftEdgeGaps bool
	LookaheadDays       int
	DefaultServiceHours float64
}
