package get_availability_rules

import (
	getAvailableSlots "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
)

type RulesProvider interface {
	Rules() *getAvailableSlots.RulesResponse
}
