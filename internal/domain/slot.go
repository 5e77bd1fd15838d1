package domain

import (
	"time"

	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// Slot свободное окно для бронирования. Не хранится, считается на каждый запрос.
type Slot struct {
	ID        string // "<shiftID>-<startMinute>", стабильный ключ для клиента
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ShiftID   int64
}
