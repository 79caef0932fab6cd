package ports

import (
	"context"

	"engage/internal/core/domain/model/catalog"
	"engage/internal/core/domain/model/kernel"
)

// CatalogRepository defines read and lazy-create access to the service
// taxonomy.
type CatalogRepository interface {
	// GetCategory retrieves a category by identifier.
	GetCategory(ctx context.Context, id int64) (catalog.Category, error)

	// GetServiceEntry retrieves a catalog service entry by identifier.
	GetServiceEntry(ctx context.Context, id kernel.UUID) (catalog.ServiceEntry, error)

	// FindDefaultServiceEntry retrieves the category's default entry.
	// Returns errs.ObjectNotFoundError when none has been created yet.
	FindDefaultServiceEntry(ctx context.Context, categoryID int64) (catalog.ServiceEntry, error)

	// AddServiceEntry persists a new catalog service entry.
	AddServiceEntry(ctx context.Context, entry catalog.ServiceEntry) error
}
