package kernel

import (
	"fmt"

	"engage/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID,
// one that bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies every aggregate in the platform: orders, specialists,
// customer accounts, conversation channels, notifications. It wraps
// github.com/google/uuid so the rest of the domain never imports that
// package directly.
//
// The zero value is invalid. Construct through NewUUID, UUIDFromString,
// or UUIDFromBytes; Validate rejects anything else. The value is
// immutable and safe for concurrent reads.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 identifier. This is how every new
// aggregate gets its identity.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical textual form, for example
// "1f0c2a8e-9b4d-4c6a-8f3e-2d7b5a9c1e04". Braced and urn-prefixed
// variants are accepted too. Identifiers arriving over the HTTP API come
// through here.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores an identifier from its 16-byte binary form, the
// shape the persistence layer stores. The nil UUID is rejected so a row
// with a zeroed key cannot restore into a valid aggregate identity.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical lowercase hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying uuid.UUID value. The persistence layer
// uses it for binary key columns; domain code should not need it.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values identify the same aggregate.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil
// for anything produced by the constructors.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
