// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"engage/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SpecialistRepoFactory provides access to the specialist repository within a transaction.
	SpecialistRepoFactory interface {
		SpecialistRepository() ports.SpecialistRepository
	}

	// CatalogRepoFactory provides access to the catalog repository within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// ChannelRepoFactory provides access to the conversation channel repository within a transaction.
	ChannelRepoFactory interface {
		ChannelRepository() ports.ChannelRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order lifecycle operations. Most
	// transitions also record a notification row, so the notification
	// repository rides along.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		NotificationRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SpecialistUoW manages transactions for specialist-only operations.
	SpecialistUoW interface {
		TxManager
		SpecialistRepoFactory
	}

	// SpecialistUoWFactory creates new specialist unit of work instances.
	SpecialistUoWFactory interface {
		Create() SpecialistUoW
	}

	// UoW manages transactions that span several aggregate types, such as
	// order creation and acceptance.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   specialistRepo := uow.SpecialistRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		SpecialistRepoFactory
		CatalogRepoFactory
		ChannelRepoFactory
		NotificationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
