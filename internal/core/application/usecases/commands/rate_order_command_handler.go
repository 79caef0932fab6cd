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
	"engage/internal/pkg/errs"
)

// RateOrderCommandHandler handles the customer rating confirmed work.
//
// Rating is the closing act of an engagement. One transaction persists the
// immutable rating row, recomputes the specialist's rating aggregate, moves
// the order to CLOSED and archives the conversation channel. The specialist
// is told about the rating after commit.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRateOrderCommandHandler creates a handler for rating operations.
func NewRateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier, logger *slog.Logger) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "rate_order_handler"),
	}
}

// Handle processes the rating command.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
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
	if err = engagement.Close(cmd.ActorID(), cmd.Score(), now); err != nil {
		return err
	}
	specialistID := *engagement.Specialist()

	rating, err := order.NewRating(
		engagement.ID(), cmd.ActorID(), specialistID,
		cmd.Score(), cmd.Comment(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().AddRating(ctx, rating); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	// The rating aggregate is folded in atomically; a read-modify-write of
	// the whole specialist row here would lose one of two concurrent
	// ratings for different orders.
	if err = uow.SpecialistRepository().ApplyRating(ctx, specialistID, cmd.Score()); err != nil {
		return err
	}

	if err = h.archiveChannel(ctx, uow, engagement.ID()); err != nil {
		return err
	}

	rated, err := notification.NewNotification(
		specialistID, notification.KindOrderRated, engagement.ID(),
		"You received a rating", "The customer has rated the completed work.", now,
	)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, rated)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, rated)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}

// archiveChannel closes the conversation. A missing channel is tolerated:
// orders cancelled before acceptance never had one.
func (h RateOrderCommandHandler) archiveChannel(ctx context.Context, uow UoW, orderID kernel.UUID) error {
	channel, err := uow.ChannelRepository().GetByOrderID(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	channel.Archive()
	return uow.ChannelRepository().Update(ctx, channel)
}
