// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations, including the append-only event log and ratings.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for querying by status and by either participant.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;index"`
	SpecialistID *uuid.UUID `gorm:"type:uuid;index"`
	Mode         int
	CategoryID   int64
	ServiceID    uuid.UUID `gorm:"type:uuid"`

	AddressFormatted *string
	AddressLat       *float64
	AddressLng       *float64
	AddressPlaceID   *string

	IntentKind int
	IntentAt   *time.Time

	AcceptDeadlineAt time.Time `gorm:"index"`
	CreatedAt        time.Time
	Status           int `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// EventDTO represents one row of an order's append-only event log.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ActorID   uuid.UUID `gorm:"type:uuid"`
	EventType string
	Payload   string
	CreatedAt time.Time
}

// TableName specifies the database table name for order events.
func (EventDTO) TableName() string {
	return "order_events"
}

// RatingDTO represents the immutable rating row left when an order closes.
type RatingDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid"`
	SpecialistID uuid.UUID `gorm:"type:uuid;index"`
	Score        int
	Comment      string
	CreatedAt    time.Time
}

// TableName specifies the database table name for ratings.
func (RatingDTO) TableName() string {
	return "order_ratings"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var specialistID *uuid.UUID
	if id := o.Specialist(); id != nil {
		raw := id.Bytes()
		specialistID = &raw
	}

	dto := OrderDTO{
		ID:               o.ID().Bytes(),
		CustomerID:       o.Customer().Bytes(),
		SpecialistID:     specialistID,
		Mode:             int(o.Mode()),
		CategoryID:       o.CategoryID(),
		ServiceID:        o.ServiceID().Bytes(),
		IntentKind:       int(o.Intent().Kind()),
		IntentAt:         o.Intent().At(),
		AcceptDeadlineAt: o.AcceptDeadlineAt(),
		CreatedAt:        o.CreatedAt(),
		Status:           int(o.Status()),
	}

	if address := o.Address(); address != nil {
		formatted := address.Formatted()
		lat, lng := address.Point().Lat(), address.Point().Lng()
		placeID := address.PlaceID()
		dto.AddressFormatted = &formatted
		dto.AddressLat, dto.AddressLng = &lat, &lng
		dto.AddressPlaceID = &placeID
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate. Events are
// not attached: the aggregate's event slice holds only uncommitted events.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var specialistID *kernel.UUID
	if dto.SpecialistID != nil {
		sID, spErr := kernel.UUIDFromBytes((*dto.SpecialistID)[:])
		if spErr != nil {
			return nil, spErr
		}
		specialistID = &sID
	}

	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	var address *kernel.Address
	if dto.AddressFormatted != nil && dto.AddressLat != nil && dto.AddressLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.AddressLat, *dto.AddressLng)
		if pointErr != nil {
			return nil, pointErr
		}
		placeID := ""
		if dto.AddressPlaceID != nil {
			placeID = *dto.AddressPlaceID
		}
		restored, addrErr := kernel.NewAddress(*dto.AddressFormatted, point, placeID)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	intent, err := order.RestoreSchedulingIntent(order.IntentKind(dto.IntentKind), dto.IntentAt)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, specialistID,
		order.ServiceMode(dto.Mode), dto.CategoryID, serviceID,
		address, intent,
		dto.AcceptDeadlineAt, dto.CreatedAt,
		order.Status(dto.Status),
	)
}

func eventFromDomain(event order.Event) (EventDTO, error) {
	payload := ""
	if event.Payload() != nil {
		raw, err := json.Marshal(event.Payload())
		if err != nil {
			return EventDTO{}, err
		}
		payload = string(raw)
	}

	return EventDTO{
		ID:        event.ID().Bytes(),
		OrderID:   event.OrderID().Bytes(),
		ActorID:   event.Actor().Bytes(),
		EventType: string(event.Type()),
		Payload:   payload,
		CreatedAt: event.CreatedAt(),
	}, nil
}

func eventToDomain(dto EventDTO) (order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Event{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Event{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.Event{}, err
	}

	var payload map[string]string
	if dto.Payload != "" {
		if err := json.Unmarshal([]byte(dto.Payload), &payload); err != nil {
			return order.Event{}, err
		}
	}

	return order.RestoreEvent(id, orderID, actorID,
		order.EventType(dto.EventType), payload, dto.CreatedAt), nil
}

func ratingFromDomain(rating *order.Rating) RatingDTO {
	return RatingDTO{
		ID:           rating.ID().Bytes(),
		OrderID:      rating.OrderID().Bytes(),
		CustomerID:   rating.Customer().Bytes(),
		SpecialistID: rating.Specialist().Bytes(),
		Score:        rating.Score(),
		Comment:      rating.Comment(),
		CreatedAt:    rating.CreatedAt(),
	}
}
