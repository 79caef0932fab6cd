package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
)

// ReviewOrderCommandHandler handles the customer's review of finished work.
// Confirmation moves the order towards closing; rejection returns it to the
// specialist as in-progress work. Either verdict notifies the specialist.
type ReviewOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewReviewOrderCommandHandler creates a handler for review verdicts.
func NewReviewOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) ReviewOrderCommandHandler {
	return ReviewOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "review_order_handler"),
	}
}

// Handle processes the review command.
func (h ReviewOrderCommandHandler) Handle(ctx context.Context, cmd ReviewOrderCommand) error {
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
	if cmd.Confirm() {
		err = engagement.Confirm(cmd.ActorID(), now)
	} else {
		err = engagement.RejectFinish(cmd.ActorID(), cmd.Reason(), now)
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	verdict, err := h.verdictNotification(engagement, cmd, now)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, verdict)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, verdict)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}

func (h ReviewOrderCommandHandler) verdictNotification(
	engagement *order.Order,
	cmd ReviewOrderCommand,
	now time.Time,
) (*notification.Notification, error) {
	recipient := *engagement.Specialist()
	if cmd.Confirm() {
		return notification.NewNotification(
			recipient, notification.KindOrderConfirmed, engagement.ID(),
			"Work confirmed", "The customer has confirmed the completed work.", now,
		)
	}

	// Rejection can recur on the same order, once per review round.
	events := engagement.Events()
	return notification.NewOccurrenceNotification(
		recipient, notification.KindOrderRejected, engagement.ID(),
		events[len(events)-1].ID(),
		"Work sent back", "The customer has asked for further work before confirming.", now,
	)
}
