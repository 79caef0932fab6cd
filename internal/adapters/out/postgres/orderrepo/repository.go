package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database together with its recorded events.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database and appends its newly
// recorded events.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateWithStatusGuard saves the order only if the stored row still has the
// expected status. A failed guard against an existing row reports a
// concurrent modification; a missing row reports not found.
func (r *GormOrderRepository) UpdateWithStatusGuard(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return ports.ErrConcurrentModification
	}

	if err := r.appendEvents(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetEvents retrieves the full event log of an order, oldest first.
func (r *GormOrderRepository) GetEvents(ctx context.Context, orderID kernel.UUID) ([]order.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// GetExpiredPending retrieves pending orders whose acceptance deadline is
// strictly in the past. An order at exactly the deadline is still
// acceptable and is not returned.
func (r *GormOrderRepository) GetExpiredPending(ctx context.Context, now time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND accept_deadline_at < ?", int(order.Pending), now).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// ListByParticipant retrieves orders where the account is the customer or the
// bound specialist, newest first.
func (r *GormOrderRepository) ListByParticipant(
	ctx context.Context,
	participantID kernel.UUID,
	closed bool,
	limit, offset int,
) ([]*order.Order, error) {
	if err := participantID.Validate(); err != nil {
		return nil, err
	}

	terminal := terminalStatuses()
	query := r.db.WithContext(ctx).
		Where("customer_id = ? OR specialist_id = ?", participantID.Bytes(), participantID.Bytes())
	if closed {
		query = query.Where("status IN ?", terminal)
	} else {
		query = query.Where("status NOT IN ?", terminal)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// AddRating persists a rating row. The unique order index rejects a second
// rating for the same order.
func (r *GormOrderRepository) AddRating(ctx context.Context, rating *order.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	dto := ratingFromDomain(rating)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// appendEvents inserts the aggregate's uncommitted events. Inserts conflict
// on the event ID so replays within one unit of work stay idempotent.
func (r *GormOrderRepository) appendEvents(ctx context.Context, aggregate *order.Order) error {
	events := aggregate.Events()
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dto, err := eventFromDomain(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func terminalStatuses() []int {
	var terminal []int
	for _, s := range []order.Status{
		order.Closed, order.CancelledByCustomer, order.CancelledBySpecialist, order.CancelledAuto,
	} {
		terminal = append(terminal, int(s))
	}
	return terminal
}
