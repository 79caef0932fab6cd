package commands

import (
	"errors"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents the customer rating confirmed work, which
// also closes the order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	score   int
	comment string

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a rating command. The score must lie within
// the rating scale; the comment is free text and may be empty.
func NewRateOrderCommand(orderID, actorID kernel.UUID, score int, comment string) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return RateOrderCommand{}, err
	}
	if score < order.RatingMin || score > order.RatingMax {
		return RateOrderCommand{}, errs.NewValueIsOutOfRangeError("score", score, order.RatingMin, order.RatingMax)
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.score = score
	cmd.comment = comment
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the order being rated.
func (c RateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the rating customer.
func (c RateOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Score returns the rating score.
func (c RateOrderCommand) Score() int { return c.score }

// Comment returns the free-text comment.
func (c RateOrderCommand) Comment() string { return c.comment }
