package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/notification"
	"engage/internal/core/ports"
)

// FinishOrderCommandHandler handles the specialist declaring the work done.
// The order moves to client review and the customer is asked to confirm.
type FinishOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewFinishOrderCommandHandler creates a handler for finish declarations.
func NewFinishOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "finish_order_handler"),
	}
}

// Handle processes the finish command.
func (h FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) error {
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
	if err = engagement.Finish(cmd.ActorID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	// A rejected review sends the order back to IN_PROGRESS, so a later
	// finish is a new occurrence and must not collapse into the first one.
	events := engagement.Events()
	finished, err := notification.NewOccurrenceNotification(
		engagement.Customer(), notification.KindOrderFinished, engagement.ID(),
		events[len(events)-1].ID(),
		"Work completed", "Please review and confirm the completed work.", now,
	)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, finished)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, finished)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}
