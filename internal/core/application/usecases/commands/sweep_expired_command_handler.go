package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
)

// SweepExpiredCommandHandler expires pending orders whose acceptance
// deadline has passed, attributing the CANCELLED_AUTO event to the system
// principal.
//
// Each order is swept in its own transaction with the PENDING status guard,
// so the sweep loses cleanly to a last-moment acceptance and one order's
// failure never blocks the rest of the batch. Participants are notified at
// most once per order; the dedupe row also covers the race with the
// sweep-on-read path.
type SweepExpiredCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewSweepExpiredCommandHandler creates a handler for deadline sweeps.
func NewSweepExpiredCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) SweepExpiredCommandHandler {
	return SweepExpiredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "sweep_expired_handler"),
	}
}

// Handle processes the sweep command.
func (h SweepExpiredCommandHandler) Handle(ctx context.Context, cmd SweepExpiredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	expired, err := h.listExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, engagement := range expired {
		if err := h.expireOne(ctx, engagement.ID(), now); err != nil {
			if errors.Is(err, ports.ErrConcurrentModification) {
				continue // accepted or extended under our feet
			}
			h.logger.ErrorContext(ctx, "Order expiration failed",
				"order", engagement.ID().String(), "error", err)
		}
	}

	return nil
}

func (h SweepExpiredCommandHandler) listExpired(ctx context.Context, now time.Time) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetExpiredPending(ctx, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return expired, nil
}

// expireOne re-reads and expires a single order in its own transaction.
func (h SweepExpiredCommandHandler) expireOne(ctx context.Context, orderID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	engagement, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = engagement.Expire(now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, order.Pending); err != nil {
		return err
	}

	outbox, err := h.recordExpiryNotifications(ctx, uow.NotificationRepository(), engagement, now)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}

func (h SweepExpiredCommandHandler) recordExpiryNotifications(
	ctx context.Context,
	repo ports.NotificationRepository,
	engagement *order.Order,
	now time.Time,
) ([]*notification.Notification, error) {
	recipients := []kernel.UUID{engagement.Customer()}
	if engagement.Specialist() != nil {
		recipients = append(recipients, *engagement.Specialist())
	}

	var outbox []*notification.Notification
	for _, recipient := range recipients {
		n, err := notification.NewNotification(
			recipient, notification.KindOrderExpired, engagement.ID(),
			"Request expired", "The request was not accepted in time and has been cancelled.", now,
		)
		if err != nil {
			return nil, err
		}

		created, err := repo.Record(ctx, n)
		if err != nil {
			return nil, err
		}
		if created {
			outbox = append(outbox, n)
		}
	}
	return outbox, nil
}
