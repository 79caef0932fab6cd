package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
)

// CancelBySpecialistCommandHandler handles a specialist backing out.
//
// Declining a still-pending request carries no penalty. Abandoning accepted
// work increments the specialist's cancellation statistic; the increment is
// best effort and never blocks the cancellation itself. The customer is
// notified after commit.
type CancelBySpecialistCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCancelBySpecialistCommandHandler creates a handler for specialist cancellations.
func NewCancelBySpecialistCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) CancelBySpecialistCommandHandler {
	return CancelBySpecialistCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "cancel_by_specialist_handler"),
	}
}

// Handle processes the cancellation command.
func (h CancelBySpecialistCommandHandler) Handle(ctx context.Context, cmd CancelBySpecialistCommand) error {
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
	if err = engagement.CancelBySpecialist(cmd.ActorID(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	// A decline while pending is not a cancellation for the statistic.
	if prior != order.Pending {
		if err = h.incrementStatistic(ctx, uow, cmd.ActorID()); err != nil {
			h.logger.WarnContext(ctx, "Cancellation statistic update failed",
				"specialist", cmd.ActorID().String(), "error", err)
		}
	}

	cancelled, err := notification.NewNotification(
		engagement.Customer(), notification.KindOrderCancelled, engagement.ID(),
		"Specialist cancelled", "The specialist is no longer able to take your request.", now,
	)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, cancelled)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, cancelled)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}

func (h CancelBySpecialistCommandHandler) incrementStatistic(ctx context.Context, uow UoW, specialistID kernel.UUID) error {
	sp, err := uow.SpecialistRepository().Get(ctx, specialistID)
	if err != nil {
		return err
	}
	sp.IncrementCancellations()
	return uow.SpecialistRepository().Update(ctx, sp)
}
