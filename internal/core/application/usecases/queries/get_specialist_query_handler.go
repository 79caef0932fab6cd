package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/pkg/errs"
)

// GetSpecialistQueryHandler retrieves one specialist profile from the
// database, joining the category links against the taxonomy to resolve
// certification gating.
type GetSpecialistQueryHandler struct {
	db *gorm.DB
}

// NewGetSpecialistQueryHandler creates a handler for profile queries.
func NewGetSpecialistQueryHandler(db *gorm.DB) GetSpecialistQueryHandler {
	return GetSpecialistQueryHandler{db: db}
}

// Handle executes the query.
func (h GetSpecialistQueryHandler) Handle(
	ctx context.Context,
	query GetSpecialistQuery,
) (GetSpecialistQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSpecialistQueryResponse{}, err
	}

	var profile struct {
		ID          uuid.UUID
		DisplayName string
		RadiusKm    float64
		PriceMinor  sql.NullInt64
		RatingAvg   float64
		RatingCount int
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			display_name,
			radius_km,
			price_minor,
			rating_avg,
			rating_count
		FROM specialists
		WHERE id = ?
	`, query.SpecialistID().Bytes()).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GetSpecialistQueryResponse{}, errs.NewObjectNotFoundError(
				"specialist", query.SpecialistID().String())
		}
		return GetSpecialistQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(profile.ID[:])
	if err != nil {
		return GetSpecialistQueryResponse{}, err
	}

	response := GetSpecialistQueryResponse{
		ID:          id,
		DisplayName: profile.DisplayName,
		RadiusKm:    profile.RadiusKm,
		RatingAvg:   profile.RatingAvg,
		RatingCount: profile.RatingCount,
	}
	if profile.PriceMinor.Valid {
		price := profile.PriceMinor.Int64
		response.PriceMinor = &price
	}

	categories, err := h.loadCategories(ctx, query.SpecialistID())
	if err != nil {
		return GetSpecialistQueryResponse{}, err
	}
	response.Categories = categories

	return response, nil
}

func (h GetSpecialistQueryHandler) loadCategories(
	ctx context.Context,
	specialistID kernel.UUID,
) ([]SpecialistCategoryResponse, error) {
	categories := make([]SpecialistCategoryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sc.category_id,
			sc.certification,
			COALESCE(c.requires_certification, FALSE)
		FROM specialist_categories sc
		LEFT JOIN categories c ON c.id = sc.category_id
		WHERE sc.specialist_id = ?
		ORDER BY sc.category_id
	`, specialistID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int64
		var certification int
		var requiresCertification bool

		if err = rows.Scan(&categoryID, &certification, &requiresCertification); err != nil {
			return nil, err
		}

		link := specialist.CategoryLink{
			CategoryID:    categoryID,
			Certification: specialist.CertificationStatus(certification),
		}
		categories = append(categories, SpecialistCategoryResponse{
			CategoryID: categoryID,
			Enabled:    link.Enabled(requiresCertification),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
