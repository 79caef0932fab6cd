package order

import (
	"fmt"

	"engage/internal/pkg/errs"
)

// ServiceMode determines where the service takes place and therefore which
// address rules apply on creation: HOME requires the customer's address to
// geocode into the supported region, OFFICE substitutes the specialist's
// registered address, ONLINE carries no address at all.
type ServiceMode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown ServiceMode = iota

	// ModeHome means the specialist travels to the customer's address.
	ModeHome

	// ModeOffice means the customer visits the specialist's registered address.
	ModeOffice

	// ModeOnline means the engagement is remote and has no address.
	ModeOnline
)

func getServiceModeStrings() map[ServiceMode]string {
	return map[ServiceMode]string{
		ModeUnknown: "UNKNOWN",
		ModeHome:    "HOME",
		ModeOffice:  "OFFICE",
		ModeOnline:  "ONLINE",
	}
}

// ServiceModeFromString parses a wire string ("HOME", "OFFICE", "ONLINE")
// into a ServiceMode. Returns a validation error for anything else.
func ServiceModeFromString(s string) (ServiceMode, error) {
	for mode, str := range getServiceModeStrings() {
		if str == s && mode != ModeUnknown {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"service mode", fmt.Errorf("%q is not a valid service mode", s))
}

// Validate checks if the ServiceMode value is valid.
func (m ServiceMode) Validate() error {
	switch m {
	case ModeHome, ModeOffice, ModeOnline:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"service mode", fmt.Errorf("%d is not a valid service mode", m))
	}
}

// String returns the wire name of the mode.
func (m ServiceMode) String() string {
	if str, ok := getServiceModeStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

// RequiresAddress reports whether orders in this mode must carry an address.
func (m ServiceMode) RequiresAddress() bool {
	return m == ModeHome || m == ModeOffice
}
