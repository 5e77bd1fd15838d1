package create_appointment

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/pkg/types"
)

// validateRequest валидирует входные данные и нормализует время. Возвращает длительность в минутах
func validateRequest(req *Request) (int, error) {
	if req.ClientID <= 0 {
		return 0, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if req.ServiceType == "" {
		return 0, fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if len(req.ServiceType) > domain.MaxServiceTypeLength {
		return 0, fmt.Errorf("%w: serviceType is longer than %d characters", ErrInvalidInput, domain.MaxServiceTypeLength)
	}

	if len(req.AddOns) > domain.MaxAddOns {
		return 0, fmt.Errorf("%w: too many add-ons (max %d)", ErrInvalidInput, domain.MaxAddOns)
	}

	if req.QuotedPrice < 0 || math.IsNaN(req.QuotedPrice) {
		return 0, fmt.Errorf("%w: quotedPrice must not be negative", ErrInvalidInput)
	}
	if req.EstimatedHours < 0 || math.IsNaN(req.EstimatedHours) {
		return 0, fmt.Errorf("%w: estimatedHours must not be negative", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime.String())
	if err != nil {
		return 0, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime.String())
	if err != nil {
		return 0, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	req.StartTime, req.EndTime = start, end

	startMinutes, _ := start.Minutes()
	endMinutes, _ := end.Minutes()
	if startMinutes >= endMinutes {
		return 0, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	duration := endMinutes - startMinutes
	if duration > domain.MaxServiceHours*60 {
		return 0, fmt.Errorf("%w: appointment longer than %d hours", ErrInvalidInput, domain.MaxServiceHours)
	}

	return duration, nil
}
