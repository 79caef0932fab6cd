package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/notification"
	"engage/internal/core/ports"
)

// CancelByCustomerCommandHandler handles a customer withdrawing an order.
// A bound specialist is notified after commit.
type CancelByCustomerCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelByCustomerCommandHandler creates a handler for customer cancellations.
func NewCancelByCustomerCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) CancelByCustomerCommandHandler {
	return CancelByCustomerCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_by_customer_handler"),
	}
}

// Handle processes the cancellation command.
func (h CancelByCustomerCommandHandler) Handle(ctx context.Context, cmd CancelByCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	engagement, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prior := engagement.Status()
	if err = engagement.CancelByCustomer(cmd.ActorID(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	var outbox []*notification.Notification
	if engagement.Specialist() != nil {
		cancelled, err := notification.NewNotification(
			*engagement.Specialist(), notification.KindOrderCancelled, engagement.ID(),
			"Request cancelled", "The customer has cancelled the request.", now,
		)
		if err != nil {
			return err
		}

		created, err := uow.NotificationRepository().Record(ctx, cancelled)
		if err != nil {
			return err
		}
		if created {
			outbox = append(outbox, cancelled)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}
