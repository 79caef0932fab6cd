// Package chatrepo persists conversation channels opened on acceptance.
package chatrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"engage/internal/core/domain/model/chat"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/pkg/errs"
)

// ChannelDTO represents the database structure for conversation channels.
// One channel per order, enforced by the unique order index.
type ChannelDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	SpecialistID uuid.UUID `gorm:"type:uuid;index"`
	Archived     bool
}

// TableName specifies the database table name for channels.
func (ChannelDTO) TableName() string {
	return "chat_channels"
}

// GormChannelRepository implements ChannelRepository using GORM.
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository creates a new GORM channel repository.
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	return &GormChannelRepository{db: db}
}

// FindOrCreate inserts the candidate channel unless the order already has
// one, then returns whichever row won. Conflicting on the order makes a
// retried acceptance reuse the original channel.
func (r *GormChannelRepository) FindOrCreate(ctx context.Context, candidate *chat.Channel) (*chat.Channel, error) {
	dto := fromDomain(candidate)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).
		Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.GetByOrderID(ctx, candidate.OrderID())
}

// GetByOrderID retrieves the channel opened for an order.
func (r *GormChannelRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*chat.Channel, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ChannelDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("chat channel", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update persists channel changes.
func (r *GormChannelRepository) Update(ctx context.Context, channel *chat.Channel) error {
	dto := fromDomain(channel)
	result := r.db.WithContext(ctx).Model(&ChannelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func fromDomain(channel *chat.Channel) ChannelDTO {
	return ChannelDTO{
		ID:           channel.ID().Bytes(),
		OrderID:      channel.OrderID().Bytes(),
		CustomerID:   channel.CustomerID().Bytes(),
		SpecialistID: channel.SpecialistID().Bytes(),
		Archived:     channel.Archived(),
	}
}

func toDomain(dto ChannelDTO) (*chat.Channel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	specialistID, err := kernel.UUIDFromBytes(dto.SpecialistID[:])
	if err != nil {
		return nil, err
	}

	return chat.RestoreChannel(id, orderID, customerID, specialistID, dto.Archived), nil
}
