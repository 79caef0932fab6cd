package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/notification"
	"engage/internal/core/ports"
)

// RescheduleOrderCommandHandler handles moving the agreed time of an
// engagement. Either participant may reschedule; the status is unchanged,
// a RESCHEDULED event is appended and the other participant is told about
// the new time.
type RescheduleOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRescheduleOrderCommandHandler creates a handler for reschedule requests.
func NewRescheduleOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier, logger *slog.Logger) RescheduleOrderCommandHandler {
	return RescheduleOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "reschedule_order_handler"),
	}
}

// Handle processes the reschedule command.
func (h RescheduleOrderCommandHandler) Handle(ctx context.Context, cmd RescheduleOrderCommand) error {
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
	if err = engagement.Reschedule(cmd.ActorID(), cmd.NewAt(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	// The participant who did not initiate the change is the one who needs
	// to hear about it. Reschedule requires a bound specialist, so both
	// parties exist here.
	recipient := engagement.Customer()
	if engagement.Customer().IsEqual(cmd.ActorID()) {
		recipient = *engagement.Specialist()
	}

	// Each reschedule is its own occurrence.
	events := engagement.Events()
	rescheduled, err := notification.NewOccurrenceNotification(
		recipient, notification.KindOrderRescheduled, engagement.ID(),
		events[len(events)-1].ID(),
		"Appointment moved", "The agreed time of your engagement has changed.", now,
	)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, rescheduled)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, rescheduled)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}
