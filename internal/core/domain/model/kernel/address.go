package kernel

import (
	"errors"

	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly initialized Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is a geocoded postal address: the formatted text returned by the
// geocoding provider together with the resolved coordinate and the provider's
// place identifier. Immutable value object; the zero value is invalid.
type Address struct { //nolint:recvcheck //using for validation
	formatted string
	point     GeoPoint
	placeID   string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. The formatted text must not be
// empty and the point must be a properly constructed GeoPoint. The placeID
// is provider-specific and may be empty.
func NewAddress(formatted string, point GeoPoint, placeID string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(addr.setFormatted(formatted), addr.setPoint(point)); err != nil {
		return Address{}, err
	}

	addr.placeID = placeID
	return addr, nil
}

// Validate checks if the Address was properly constructed using the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Formatted returns the human-readable address text.
func (a Address) Formatted() string {
	return a.formatted
}

// Point returns the resolved coordinate.
func (a Address) Point() GeoPoint {
	return a.point
}

// PlaceID returns the geocoding provider's place identifier, possibly empty.
func (a Address) PlaceID() string {
	return a.placeID
}

func (a *Address) setFormatted(formatted string) error {
	if formatted == "" {
		return errs.NewValueIsRequiredError("formatted address")
	}
	a.formatted = formatted
	return nil
}

func (a *Address) setPoint(point GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	a.point = point
	return nil
}
