package queries

import (
	"context"

	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
)

// MaxSearchRadiusKm bounds the coarse prefilter box around the search
// origin. Advertised service radii are capped at the same value, so a
// wider box cannot add matches.
const MaxSearchRadiusKm = specialist.MaxServiceRadiusKm

// SearchSpecialistsQueryHandler ranks available specialists around a point.
// The search index narrows the population to a bounding box; the candidate
// matcher then applies each specialist's own radius and certification gates.
type SearchSpecialistsQueryHandler struct {
	specialists ports.SpecialistRepository
	catalog     ports.CatalogRepository
	matcher     services.CandidateMatcher
}

// NewSearchSpecialistsQueryHandler creates a handler for specialist search.
func NewSearchSpecialistsQueryHandler(
	specialists ports.SpecialistRepository,
	catalog ports.CatalogRepository,
) SearchSpecialistsQueryHandler {
	return SearchSpecialistsQueryHandler{
		specialists: specialists,
		catalog:     catalog,
		matcher:     services.NewCandidateMatcher(),
	}
}

// Handle executes the search and returns ranked results.
func (h SearchSpecialistsQueryHandler) Handle(
	ctx context.Context,
	query SearchSpecialistsQuery,
) ([]SearchSpecialistsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	category, err := h.catalog.GetCategory(ctx, query.CategoryID())
	if err != nil {
		return nil, err
	}

	box, err := query.Origin().BoundingBox(MaxSearchRadiusKm)
	if err != nil {
		return nil, err
	}

	candidates, err := h.specialists.FindCandidatesWithin(ctx, box, query.CategoryID())
	if err != nil {
		return nil, err
	}

	ranked, err := h.matcher.Match(
		query.Origin(), query.CategoryID(), category.RequiresCertification(),
		candidates, query.SortMode(), query.Limit())
	if err != nil {
		return nil, err
	}

	results := make([]SearchSpecialistsQueryResponse, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, SearchSpecialistsQueryResponse{
			SpecialistID: r.Specialist.ID(),
			DisplayName:  r.Specialist.DisplayName(),
			DistanceKm:   r.DistanceKm,
			RatingAvg:    r.Specialist.RatingAvg(),
			RatingCount:  r.Specialist.RatingCount(),
			PriceMinor:   r.Specialist.PriceMinor(),
		})
	}

	return results, nil
}
