// Package notification models outbound push notifications with
// at-most-once delivery per business fact.
package notification

import (
	"fmt"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// Kind identifies the business fact a notification reports.
type Kind string

const (
	KindOrderCreated     Kind = "ORDER_CREATED"
	KindOrderAccepted    Kind = "ORDER_ACCEPTED"
	KindOrderRescheduled Kind = "ORDER_RESCHEDULED"
	KindOrderFinished    Kind = "ORDER_FINISHED"
	KindOrderConfirmed   Kind = "ORDER_CONFIRMED"
	KindOrderRejected    Kind = "ORDER_REJECTED"
	KindOrderRated       Kind = "ORDER_RATED"
	KindOrderCancelled   Kind = "ORDER_CANCELLED"
	KindOrderExpired     Kind = "ORDER_EXPIRED"
)

// Notification is one outbound push message. The natural key is derived
// from the kind and the order, so recording the same business fact twice
// collapses into a single stored row and a single delivery attempt.
//
// Facts that can legitimately recur on one order (a second finish after a
// rejected review, every reschedule) carry an occurrence identifier in the
// key, so only duplicate triggers of the same occurrence collapse.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	kind        Kind
	naturalKey  string
	title       string
	body        string
	createdAt   time.Time
}

// NewNotification creates a notification about an order addressed to one
// recipient.
func NewNotification(recipientID kernel.UUID, kind Kind, orderID kernel.UUID, title, body string, createdAt time.Time) (*Notification, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("recipientID", err)
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("kind")
	}
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:          kernel.NewUUID(),
		recipientID: recipientID,
		kind:        kind,
		naturalKey:  NaturalKey(kind, orderID, recipientID),
		title:       title,
		body:        body,
		createdAt:   createdAt,
	}, nil
}

// NewOccurrenceNotification creates a notification about one occurrence of
// a repeatable fact. The occurrence identifier is the order event that
// triggered the notification, so a second occurrence of the same kind on
// the same order is a new fact rather than a duplicate.
func NewOccurrenceNotification(
	recipientID kernel.UUID,
	kind Kind,
	orderID kernel.UUID,
	occurrenceID kernel.UUID,
	title, body string,
	createdAt time.Time,
) (*Notification, error) {
	if err := occurrenceID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("occurrenceID", err)
	}

	n, err := NewNotification(recipientID, kind, orderID, title, body, createdAt)
	if err != nil {
		return nil, err
	}

	n.naturalKey = OccurrenceKey(kind, orderID, recipientID, occurrenceID)
	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(id, recipientID kernel.UUID, kind Kind, naturalKey, title, body string, createdAt time.Time) *Notification {
	return &Notification{
		id:          id,
		recipientID: recipientID,
		kind:        kind,
		naturalKey:  naturalKey,
		title:       title,
		body:        body,
		createdAt:   createdAt,
	}
}

// NaturalKey derives the dedupe key for a business fact. Two notifications
// with the same key describe the same fact to the same recipient.
func NaturalKey(kind Kind, orderID, recipientID kernel.UUID) string {
	return fmt.Sprintf("%s:%s:%s", kind, orderID, recipientID)
}

// OccurrenceKey derives the dedupe key for one occurrence of a repeatable
// fact, scoped by the triggering order event.
func OccurrenceKey(kind Kind, orderID, recipientID, occurrenceID kernel.UUID) string {
	return fmt.Sprintf("%s:%s:%s:%s", kind, orderID, recipientID, occurrenceID)
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// RecipientID returns the addressee.
func (n *Notification) RecipientID() kernel.UUID { return n.recipientID }

// Kind returns the business fact kind.
func (n *Notification) Kind() Kind { return n.kind }

// NaturalKey returns the dedupe key.
func (n *Notification) NaturalKey() string { return n.naturalKey }

// Title returns the push title.
func (n *Notification) Title() string { return n.title }

// Body returns the push body.
func (n *Notification) Body() string { return n.body }

// CreatedAt returns when the notification was recorded.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
