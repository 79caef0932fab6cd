// Package guard provides the constructor guard pattern used by value objects,
// entities and commands throughout the application.
//
// A ConstructorGuard embedded in a struct records whether the struct was
// produced by its designated constructor. The zero value of the guard fails
// validation, so a zero-value struct can never masquerade as a valid domain
// object.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and no specific error was supplied by the caller.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects structs that bypassed their constructor.
// Embed it as a private field and call Validate with the type's
// "not constructed" sentinel error.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
// Constructors assign it as the final step of successful construction.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns notConstructedErr, or ErrDefaultConstructorGuard when
// notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
