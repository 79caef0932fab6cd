package queries

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/guard"
)

var (
	ErrGetSpecialistQueryIsNotConstructed = errors.New(
		"GetSpecialistQuery must be created via NewGetSpecialistQuery constructor",
	)
)

// GetSpecialistQuery retrieves one specialist's public profile: display
// data, rating, price and the per-category availability after certification
// gating.
type GetSpecialistQuery struct {
	guard guard.ConstructorGuard

	specialistID kernel.UUID
}

// NewGetSpecialistQuery creates a profile query.
func NewGetSpecialistQuery(specialistID kernel.UUID) (GetSpecialistQuery, error) {
	if err := specialistID.Validate(); err != nil {
		return GetSpecialistQuery{}, err
	}

	return GetSpecialistQuery{
		guard:        guard.NewConstructorGuard(),
		specialistID: specialistID,
	}, nil
}

// SpecialistID returns the profile being requested.
func (q GetSpecialistQuery) SpecialistID() kernel.UUID { return q.specialistID }

// Validate ensures the query was created through the constructor.
func (q GetSpecialistQuery) Validate() error {
	return q.guard.Validate(ErrGetSpecialistQueryIsNotConstructed)
}

// GetSpecialistQueryResponse represents a specialist's public profile.
type GetSpecialistQueryResponse struct {
	ID          kernel.UUID
	DisplayName string
	RadiusKm    float64
	PriceMinor  *int64
	RatingAvg   float64
	RatingCount int
	Categories  []SpecialistCategoryResponse
}

// SpecialistCategoryResponse represents one category link on a profile.
// Enabled reflects certification gating: a certification-gated category
// counts only with an approved record.
type SpecialistCategoryResponse struct {
	CategoryID int64
	Enabled    bool
}
