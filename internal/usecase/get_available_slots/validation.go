package get_available_slots

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

// requestedMinutes переводит часы в минуты с округлением до целой минуты
func requestedMinutes(req *Request) (int, error) {
	hours := domain.DefaultServiceHours
	if req.ServiceHours != nil {
		hours = *req.ServiceHours
	}

	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: serviceHours must be a number", ErrInvalidInput)
	}
	if hours <= 0 {
		return 0, fmt.Errorf("%w: serviceHours must be positive", ErrInvalidInput)
	}
	if hours > domain.MaxServiceHours {
		return 0, fmt.Errorf("%w: serviceHours must not exceed %d", ErrInvalidInput, domain.MaxServiceHours)
	}

	return int(math.Round(hours * 60)), nil
}
