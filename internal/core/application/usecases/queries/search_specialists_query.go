package queries

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/services"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var (
	ErrSearchSpecialistsQueryIsNotConstructed = errors.New(
		"SearchSpecialistsQuery must be created via NewSearchSpecialistsQuery constructor",
	)
)

// SearchSpecialistsQuery finds available specialists around a point for one
// service category. Results are ranked by the requested sort mode and capped.
//
// Example:
//
//	query, err := queries.NewSearchSpecialistsQuery(
//	    55.75, 37.62, 3, services.SortByDistance, 20)
//	if err != nil {
//	    return err
//	}
//
//	results, err := handler.Handle(ctx, query)
type SearchSpecialistsQuery struct {
	guard guard.ConstructorGuard

	origin     kernel.GeoPoint
	categoryID int64
	sortMode   services.SortMode
	limit      int
}

// NewSearchSpecialistsQuery creates a search query. A non-positive limit
// falls back to the default candidate cap.
func NewSearchSpecialistsQuery(
	lat, lng float64,
	categoryID int64,
	sortMode services.SortMode,
	limit int,
) (SearchSpecialistsQuery, error) {
	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return SearchSpecialistsQuery{}, err
	}

	if categoryID <= 0 {
		return SearchSpecialistsQuery{}, errs.NewValueIsRequiredError("categoryID")
	}

	if limit <= 0 {
		limit = services.DefaultCandidateLimit
	}

	return SearchSpecialistsQuery{
		guard:      guard.NewConstructorGuard(),
		origin:     origin,
		categoryID: categoryID,
		sortMode:   sortMode,
		limit:      limit,
	}, nil
}

// Origin returns the point the search is centered on.
func (q SearchSpecialistsQuery) Origin() kernel.GeoPoint { return q.origin }

// CategoryID returns the category being searched.
func (q SearchSpecialistsQuery) CategoryID() int64 { return q.categoryID }

// SortMode returns the requested ranking mode.
func (q SearchSpecialistsQuery) SortMode() services.SortMode { return q.sortMode }

// Limit returns the maximum number of results.
func (q SearchSpecialistsQuery) Limit() int { return q.limit }

// Validate ensures the query was created through the constructor.
func (q SearchSpecialistsQuery) Validate() error {
	return q.guard.Validate(ErrSearchSpecialistsQueryIsNotConstructed)
}

// SearchSpecialistsQueryResponse represents one ranked search result.
type SearchSpecialistsQueryResponse struct {
	SpecialistID kernel.UUID
	DisplayName  string
	DistanceKm   float64
	RatingAvg    float64
	RatingCount  int
	PriceMinor   *int64
}
