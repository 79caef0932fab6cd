// Package chat models the conversation channel opened between a customer
// and a specialist for the lifetime of an engagement.
package chat

import (
	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// Channel is the conversation channel for one order. A channel is created
// when the order is accepted and archived when the order reaches a terminal
// state. Creation is find-or-create on the order identifier, so repeated
// acceptance processing never opens a second channel.
type Channel struct {
	id           kernel.UUID
	orderID      kernel.UUID
	customerID   kernel.UUID
	specialistID kernel.UUID
	archived     bool
}

// NewChannel opens a channel between the order's participants.
func NewChannel(orderID, customerID, specialistID kernel.UUID) (*Channel, error) {
	ch := &Channel{id: kernel.NewUUID()}

	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	if err := specialistID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("specialistID", err)
	}

	ch.orderID = orderID
	ch.customerID = customerID
	ch.specialistID = specialistID
	return ch, nil
}

// RestoreChannel reconstructs a channel from persistence.
func RestoreChannel(id, orderID, customerID, specialistID kernel.UUID, archived bool) *Channel {
	return &Channel{
		id:           id,
		orderID:      orderID,
		customerID:   customerID,
		specialistID: specialistID,
		archived:     archived,
	}
}

// ID returns the channel identifier.
func (c *Channel) ID() kernel.UUID { return c.id }

// OrderID returns the order the channel belongs to.
func (c *Channel) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the customer participant.
func (c *Channel) CustomerID() kernel.UUID { return c.customerID }

// SpecialistID returns the specialist participant.
func (c *Channel) SpecialistID() kernel.UUID { return c.specialistID }

// Archived reports whether the channel has been closed for new messages.
func (c *Channel) Archived() bool { return c.archived }

// Archive closes the channel for new messages. Archiving an already
// archived channel is a no-op.
func (c *Channel) Archive() { c.archived = true }
