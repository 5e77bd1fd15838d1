package list_appointments

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/appointments/models"
)

// ToServiceRequest собирает фильтр из query параметров status, from, to, clientId
func ToServiceRequest(r *http.Request) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{}
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}
	req.From = from

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}
	req.To = to

	if raw := query.Get("clientId"); raw != "" {
		clientID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || clientID <= 0 {
			return nil, fmt.Errorf("query parameter %q: invalid client id %q", "clientId", raw)
		}
		req.ClientID = &clientID
	}

	return req, nil
}
