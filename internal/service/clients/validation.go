package clients

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
)

func validateClient(c *domain.Client) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)

	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(c.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if c.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidInput, c.Email)
	}

	if c.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if c.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if len(c.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is longer than %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if c.SquareFootage < 0 || c.Bedrooms < 0 || c.Bathrooms < 0 || c.AdditionalRooms < 0 {
		return fmt.Errorf("%w: home dimensions must not be negative", ErrInvalidInput)
	}

	return nil
}
