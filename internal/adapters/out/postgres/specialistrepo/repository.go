package specialistrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// GormSpecialistRepository implements SpecialistRepository using GORM.
type GormSpecialistRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSpecialistRepository creates a new GORM specialist repository.
func NewGormSpecialistRepository(db *gorm.DB, tracker aggregateTracker) *GormSpecialistRepository {
	return &GormSpecialistRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new specialist to the database.
func (r *GormSpecialistRepository) Add(ctx context.Context, aggregate *specialist.Specialist) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing specialist to the database. Category links are
// replaced wholesale so removed links do not linger.
func (r *GormSpecialistRepository) Update(ctx context.Context, aggregate *specialist.Specialist) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SpecialistDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "Categories").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).
		Where("specialist_id = ?", dto.ID).
		Delete(&CategoryLinkDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Categories) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Categories).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a specialist by ID.
func (r *GormSpecialistRepository) Get(ctx context.Context, id kernel.UUID) (*specialist.Specialist, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SpecialistDTO
	if err := r.db.WithContext(ctx).Preload("Categories").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("specialist", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPage retrieves a page of specialists ordered by ID for stable
// pagination across the whole population.
func (r *GormSpecialistRepository) GetPage(ctx context.Context, limit, offset int) ([]*specialist.Specialist, error) {
	var dtos []SpecialistDTO
	if err := r.db.WithContext(ctx).Preload("Categories").
		Order("id").Limit(limit).Offset(offset).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	specialists := make([]*specialist.Specialist, 0, len(dtos))
	for _, dto := range dtos {
		sp, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		specialists = append(specialists, sp)
	}

	return specialists, nil
}

// FindCandidatesWithin retrieves search candidates whose indexed position
// falls inside the bounding box and who serve the given category. The box
// is a coarse prefilter; precise radius checks happen in the matcher.
func (r *GormSpecialistRepository) FindCandidatesWithin(
	ctx context.Context,
	box kernel.BoundingBox,
	categoryID int64,
) ([]services.Candidate, error) {
	var dtos []SpecialistDTO
	if err := r.db.WithContext(ctx).
		Joins("JOIN search_index_entries ON search_index_entries.specialist_id = specialists.id").
		Joins("JOIN specialist_categories ON specialist_categories.specialist_id = specialists.id"+
			" AND specialist_categories.category_id = ?", categoryID).
		Where("search_index_entries.available_now = ?", true).
		Where("search_index_entries.lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("search_index_entries.lng BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Preload("Categories").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	candidates := make([]services.Candidate, 0, len(dtos))
	for _, dto := range dtos {
		sp, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, services.Candidate{
			Specialist:   sp,
			AvailableNow: true,
		})
	}

	return candidates, nil
}

// UpsertSearchIndex inserts or refreshes the denormalized index row for one
// specialist.
func (r *GormSpecialistRepository) UpsertSearchIndex(ctx context.Context, entry ports.SearchIndexEntry) error {
	dto := indexEntryFromPort(entry)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "specialist_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// ApplyRating folds one score into the stored rating aggregate. The
// arithmetic runs inside the UPDATE against the current row, so two
// ratings committing concurrently both land instead of the later write
// clobbering the earlier one.
func (r *GormSpecialistRepository) ApplyRating(ctx context.Context, specialistID kernel.UUID, score int) error {
	if err := specialistID.Validate(); err != nil {
		return err
	}
	if score < 1 || score > 5 {
		return errs.NewValueIsOutOfRangeError("score", score, 1, 5)
	}

	result := r.db.WithContext(ctx).Model(&SpecialistDTO{}).
		Where("id = ?", specialistID.Bytes()).
		Updates(map[string]any{
			"rating_avg":   gorm.Expr("(rating_avg * rating_count + ?) / (rating_count + 1)", score),
			"rating_count": gorm.Expr("rating_count + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("specialist", specialistID.String())
	}

	return nil
}
