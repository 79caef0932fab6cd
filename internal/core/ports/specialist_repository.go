package ports

import (
	"context"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
)

// SearchIndexEntry is the denormalized per-specialist row backing the
// geospatial candidate search. AvailableNow is the visibility verdict that
// was current at RefreshedAt; it is refreshed on availability changes and
// periodically, so the index is eventually consistent by design.
type SearchIndexEntry struct {
	SpecialistID kernel.UUID
	Lat          float64
	Lng          float64
	RadiusKm     float64
	AvailableNow bool
	RefreshedAt  time.Time
}

// SpecialistRepository defines the persistence contract for specialist
// aggregates and their search index rows.
type SpecialistRepository interface {
	// Add persists a new specialist aggregate.
	Add(ctx context.Context, aggregate *specialist.Specialist) error

	// Update persists changes to an existing specialist aggregate.
	Update(ctx context.Context, aggregate *specialist.Specialist) error

	// Get retrieves a specialist aggregate by its unique identifier,
	// including category links and the weekly schedule.
	Get(ctx context.Context, id kernel.UUID) (*specialist.Specialist, error)

	// GetPage retrieves specialists in stable identifier order. Used by the
	// index refresh job to walk the whole population in batches.
	GetPage(ctx context.Context, limit, offset int) ([]*specialist.Specialist, error)

	// FindCandidatesWithin retrieves matcher input for specialists whose
	// indexed center falls inside the bounding box and who are linked to
	// the category. The box is a coarse prefilter; exact distance and the
	// candidate's own radius are enforced by the matcher.
	FindCandidatesWithin(ctx context.Context, box kernel.BoundingBox, categoryID int64) ([]services.Candidate, error)

	// UpsertSearchIndex writes the specialist's search index row, replacing
	// any previous one.
	UpsertSearchIndex(ctx context.Context, entry SearchIndexEntry) error

	// ApplyRating folds one score into the specialist's stored rating
	// average and count in a single conditional write, so concurrent
	// ratings for different orders of the same specialist never lose an
	// update. The stored aggregate stays equal to the average recomputed
	// from scratch over all ratings.
	ApplyRating(ctx context.Context, specialistID kernel.UUID, score int) error
}
