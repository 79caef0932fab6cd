// Package catalog holds the service taxonomy: categories a request can be
// scoped to and the concrete service entries orders are created for.
package catalog

import (
	"errors"
	"fmt"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// Category is one service category. Categories may require certification,
// in which case only specialists with an approved certification record for
// this exact category are enabled for it.
type Category struct {
	id                    int64
	slug                  string
	name                  string
	requiresCertification bool
}

// NewCategory creates a category. The identifier must be positive and the
// slug non-empty; category identifiers are the deterministic tie-break when
// a default has to be chosen, so they are plain comparable integers.
func NewCategory(id int64, slug string, name string, requiresCertification bool) (Category, error) {
	if id <= 0 {
		return Category{}, errs.NewValueIsInvalidErrorWithCause("category id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	if slug == "" {
		return Category{}, errs.NewValueIsRequiredError("category slug")
	}

	return Category{
		id:                    id,
		slug:                  slug,
		name:                  name,
		requiresCertification: requiresCertification,
	}, nil
}

// ID returns the category identifier.
func (c Category) ID() int64 { return c.id }

// Slug returns the stable wire identifier, e.g. "plumbing".
func (c Category) Slug() string { return c.slug }

// Name returns the display name.
func (c Category) Name() string { return c.name }

// RequiresCertification reports whether the category is certification-gated.
func (c Category) RequiresCertification() bool { return c.requiresCertification }

// ServiceEntry is one concrete catalog service an order is created for.
// Every entry belongs to exactly one category; the lazily created default
// entry for a category is flagged so it is found instead of re-created.
type ServiceEntry struct {
	id         kernel.UUID
	categoryID int64
	name       string
	isDefault  bool
}

// NewServiceEntry creates a catalog service entry scoped to one category.
func NewServiceEntry(id kernel.UUID, categoryID int64, name string, isDefault bool) (ServiceEntry, error) {
	if err := id.Validate(); err != nil {
		return ServiceEntry{}, err
	}
	if categoryID <= 0 {
		return ServiceEntry{}, errs.NewValueIsInvalidErrorWithCause("category id",
			fmt.Errorf("%d is not greater than 0", categoryID))
	}
	if name == "" {
		return ServiceEntry{}, errs.NewValueIsRequiredError("service name")
	}

	return ServiceEntry{id: id, categoryID: categoryID, name: name, isDefault: isDefault}, nil
}

// NewDefaultServiceEntry creates the deterministic default entry for a
// category, used when a customer omits the concrete service.
func NewDefaultServiceEntry(categoryID int64, categorySlug string) (ServiceEntry, error) {
	if categorySlug == "" {
		return ServiceEntry{}, errs.NewValueIsRequiredError("category slug")
	}
	return NewServiceEntry(kernel.NewUUID(), categoryID, fmt.Sprintf("General %s service", categorySlug), true)
}

// ID returns the entry identifier.
func (e ServiceEntry) ID() kernel.UUID { return e.id }

// CategoryID returns the category the entry belongs to.
func (e ServiceEntry) CategoryID() int64 { return e.categoryID }

// Name returns the entry's display name.
func (e ServiceEntry) Name() string { return e.name }

// IsDefault reports whether the entry is the category's lazily created default.
func (e ServiceEntry) IsDefault() bool { return e.isDefault }

// BelongsTo verifies the entry is scoped to the given category; an entry
// from another category must never be attached to the order.
func (e ServiceEntry) BelongsTo(categoryID int64) error {
	if e.categoryID != categoryID {
		return errors.Join(
			errs.NewValueIsInvalidError("service entry"),
			fmt.Errorf("entry belongs to category %d, not %d", e.categoryID, categoryID),
		)
	}
	return nil
}
