package order

import (
	"errors"
	"fmt"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

const (
	// RatingMin is the lowest allowed rating score.
	RatingMin = 1
	// RatingMax is the highest allowed rating score.
	RatingMax = 5
)

// ErrRatingIsNotConstructed is returned when a Rating instance was not
// created through the NewRating factory method.
var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

// Rating is the customer's one-to-one assessment of a closed order.
// It is immutable once created and feeds the specialist's running
// average and count.
type Rating struct {
	id           kernel.UUID
	orderID      kernel.UUID
	customerID   kernel.UUID
	specialistID kernel.UUID
	score        int
	comment      string
	createdAt    time.Time

	isConstructed bool
}

// NewRating creates a rating for an order. The score must be within
// [RatingMin..RatingMax]; the comment may be empty.
func NewRating(
	orderID kernel.UUID,
	customerID kernel.UUID,
	specialistID kernel.UUID,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate(), specialistID.Validate()); err != nil {
		return nil, err
	}
	if score < RatingMin || score > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("score", score, RatingMin, RatingMax)
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Rating{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		customerID:    customerID,
		specialistID:  specialistID,
		score:         score,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreRating reconstructs a rating from persistence.
func RestoreRating(
	id kernel.UUID,
	orderID kernel.UUID,
	customerID kernel.UUID,
	specialistID kernel.UUID,
	score int,
	comment string,
	createdAt time.Time,
) (*Rating, error) {
	if score < RatingMin || score > RatingMax {
		return nil, errs.NewValueIsOutOfRangeErrorWithCause("score", score, RatingMin, RatingMax,
			fmt.Errorf("stored rating is corrupt"))
	}

	return &Rating{
		id:            id,
		orderID:       orderID,
		customerID:    customerID,
		specialistID:  specialistID,
		score:         score,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Rating was created through NewRating.
func (r *Rating) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRatingIsNotConstructed
	}
	return nil
}

// ID returns the rating's unique identifier.
func (r *Rating) ID() kernel.UUID { return r.id }

// OrderID returns the rated order.
func (r *Rating) OrderID() kernel.UUID { return r.orderID }

// Customer returns the rating customer.
func (r *Rating) Customer() kernel.UUID { return r.customerID }

// Specialist returns the rated specialist.
func (r *Rating) Specialist() kernel.UUID { return r.specialistID }

// Score returns the score in [RatingMin..RatingMax].
func (r *Rating) Score() int { return r.score }

// Comment returns the optional free-text comment.
func (r *Rating) Comment() string { return r.comment }

// CreatedAt returns when the rating was recorded.
func (r *Rating) CreatedAt() time.Time { return r.createdAt }
