package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/catalog"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order placement. Resolves the catalog
// service entry, resolves the meeting address according to the service mode
// and persists the pending order with its CREATED event.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command.
//
// Address resolution depends on the mode: home visits geocode the customer's
// query and fail on out-of-region results, office visits use the pre-targeted
// specialist's registered office and ignore customer input, online
// engagements carry no address. The acceptance deadline is fixed at creation
// time. A pre-targeted specialist is notified after commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	var homeAddress *kernel.Address
	if cmd.Mode() == order.ModeHome {
		resolved, err := h.geocoder.Geocode(ctx, cmd.AddressQuery())
		if err != nil {
			return err
		}
		homeAddress = &resolved
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	category, err := uow.CatalogRepository().GetCategory(ctx, cmd.CategoryID())
	if err != nil {
		return err
	}

	entry, err := h.resolveServiceEntry(ctx, uow.CatalogRepository(), category, cmd.ServiceID())
	if err != nil {
		return err
	}

	address := homeAddress
	if cmd.Mode() == order.ModeOffice {
		address, err = h.resolveOfficeAddress(ctx, uow.SpecialistRepository(), *cmd.PreTargetID())
		if err != nil {
			return err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), cmd.Mode(),
		category.ID(), entry.ID(), address, cmd.Intent(),
		cmd.PreTargetID(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	var outbox []*notification.Notification
	if cmd.PreTargetID() != nil {
		outbox, err = h.recordPreTargetNotification(ctx, uow.NotificationRepository(), newOrder, now)
		if err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}

// resolveServiceEntry returns the explicitly chosen entry after checking it
// belongs to the category, or finds the category's default entry, creating
// it on first use.
func (h CreateOrderCommandHandler) resolveServiceEntry(
	ctx context.Context,
	repo ports.CatalogRepository,
	category catalog.Category,
	serviceID *kernel.UUID,
) (catalog.ServiceEntry, error) {
	if serviceID != nil {
		entry, err := repo.GetServiceEntry(ctx, *serviceID)
		if err != nil {
			return catalog.ServiceEntry{}, err
		}
		if err = entry.BelongsTo(category.ID()); err != nil {
			return catalog.ServiceEntry{}, err
		}
		return entry, nil
	}

	entry, err := repo.FindDefaultServiceEntry(ctx, category.ID())
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return catalog.ServiceEntry{}, err
	}

	entry, err = catalog.NewDefaultServiceEntry(category.ID(), category.Slug())
	if err != nil {
		return catalog.ServiceEntry{}, err
	}
	if err = repo.AddServiceEntry(ctx, entry); err != nil {
		return catalog.ServiceEntry{}, err
	}
	return entry, nil
}

func (h CreateOrderCommandHandler) resolveOfficeAddress(
	ctx context.Context,
	repo ports.SpecialistRepository,
	specialistID kernel.UUID,
) (*kernel.Address, error) {
	sp, err := repo.Get(ctx, specialistID)
	if err != nil {
		return nil, err
	}
	if sp.OfficeAddress() == nil {
		return nil, errs.NewPreconditionFailedError(
			fmt.Sprintf("specialist %s has no registered office address", specialistID))
	}
	return sp.OfficeAddress(), nil
}

func (h CreateOrderCommandHandler) recordPreTargetNotification(
	ctx context.Context,
	repo ports.NotificationRepository,
	newOrder *order.Order,
	now time.Time,
) ([]*notification.Notification, error) {
	n, err := notification.NewNotification(
		*newOrder.Specialist(), notification.KindOrderCreated, newOrder.ID(),
		"New request for you", "A customer has requested your services.", now,
	)
	if err != nil {
		return nil, err
	}

	created, err := repo.Record(ctx, n)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}
	return []*notification.Notification{n}, nil
}
