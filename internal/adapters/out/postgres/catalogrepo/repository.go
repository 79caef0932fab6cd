// Package catalogrepo persists the service taxonomy: categories and the
// service entries underneath them, including lazily created defaults.
package catalogrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"engage/internal/core/domain/model/catalog"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// CategoryDTO represents the database structure for service categories.
type CategoryDTO struct {
	ID                    int64 `gorm:"primaryKey"`
	Slug                  string
	Name                  string
	RequiresCertification bool
}

// TableName specifies the database table name for categories.
func (CategoryDTO) TableName() string {
	return "categories"
}

// ServiceEntryDTO represents the database structure for service entries.
type ServiceEntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID int64     `gorm:"index"`
	Name       string
	IsDefault  bool
}

// TableName specifies the database table name for service entries.
func (ServiceEntryDTO) TableName() string {
	return "service_entries"
}

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetCategory retrieves a category by ID.
func (r *GormCatalogRepository) GetCategory(ctx context.Context, id int64) (catalog.Category, error) {
	var dto CategoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Category{}, errs.NewObjectNotFoundError("category", id)
		}
		return catalog.Category{}, err
	}

	return catalog.NewCategory(dto.ID, dto.Slug, dto.Name, dto.RequiresCertification)
}

// GetServiceEntry retrieves a service entry by ID.
func (r *GormCatalogRepository) GetServiceEntry(ctx context.Context, id kernel.UUID) (catalog.ServiceEntry, error) {
	if err := id.Validate(); err != nil {
		return catalog.ServiceEntry{}, err
	}

	var dto ServiceEntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ServiceEntry{}, errs.NewObjectNotFoundError("service entry", id.String())
		}
		return catalog.ServiceEntry{}, err
	}

	return entryToDomain(dto)
}

// FindDefaultServiceEntry retrieves the category's default entry.
func (r *GormCatalogRepository) FindDefaultServiceEntry(ctx context.Context, categoryID int64) (catalog.ServiceEntry, error) {
	var dto ServiceEntryDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "category_id = ? AND is_default = ?", categoryID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.ServiceEntry{}, errs.NewObjectNotFoundError("default service entry", categoryID)
		}
		return catalog.ServiceEntry{}, err
	}

	return entryToDomain(dto)
}

// AddServiceEntry persists a new service entry.
func (r *GormCatalogRepository) AddServiceEntry(ctx context.Context, entry catalog.ServiceEntry) error {
	dto := ServiceEntryDTO{
		ID:         entry.ID().Bytes(),
		CategoryID: entry.CategoryID(),
		Name:       entry.Name(),
		IsDefault:  entry.IsDefault(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func entryToDomain(dto ServiceEntryDTO) (catalog.ServiceEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.ServiceEntry{}, err
	}
	return catalog.NewServiceEntry(id, dto.CategoryID, dto.Name, dto.IsDefault)
}
