package ports

import (
	"context"

	"engage/internal/core/domain/model/chat"
	"engage/internal/core/domain/model/kernel"
)

// ChannelRepository defines the persistence contract for conversation
// channels.
type ChannelRepository interface {
	// FindOrCreate returns the existing channel for the candidate's order
	// or persists the candidate as the channel. Acceptance processing calls
	// this, so a retried accept never opens a second channel.
	FindOrCreate(ctx context.Context, candidate *chat.Channel) (*chat.Channel, error)

	// GetByOrderID retrieves the channel opened for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*chat.Channel, error)

	// Update persists channel changes, in practice archiving.
	Update(ctx context.Context, channel *chat.Channel) error
}
