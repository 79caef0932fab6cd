package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/chat"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// AcceptOrderCommandHandler handles a specialist accepting a pending order.
//
// Acceptance is the contended write of the system: two specialists may race
// for the same order. The winner is decided by a conditional update guarded
// on the PENDING status; the loser surfaces a conflict.
//
// Eligibility to accept requires a current subscription and an unblocked
// account. It does not require being visible in search: a specialist outside
// working hours may still accept a direct request.
type AcceptOrderCommandHandler struct {
	uowFactory    UoWFactory
	subscriptions ports.SubscriptionProvider
	notifier      ports.Notifier
	logger        *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	subscriptions ports.SubscriptionProvider,
	notifier ports.Notifier,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:    uowFactory,
		subscriptions: subscriptions,
		notifier:      notifier,
		logger:        logger.With("component", "accept_order_handler"),
	}
}

// Handle processes the acceptance command. On success the order is bound to
// the specialist, a conversation channel exists for the pair, and the
// customer is notified after commit.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	sub, err := h.subscriptions.GetSubscription(ctx, cmd.SpecialistID())
	if err != nil {
		return err
	}
	if !sub.OK(now) {
		return errs.NewNotEligibleError("current subscription")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sp, err := uow.SpecialistRepository().Get(ctx, cmd.SpecialistID())
	if err != nil {
		return err
	}
	if sp.AccountBlocked() {
		return errs.NewNotEligibleError("account in good standing")
	}

	claimed, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = claimed.Accept(cmd.SpecialistID(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, claimed, order.Pending); err != nil {
		return err
	}

	candidate, err := chat.NewChannel(claimed.ID(), claimed.Customer(), cmd.SpecialistID())
	if err != nil {
		return err
	}
	if _, err = uow.ChannelRepository().FindOrCreate(ctx, candidate); err != nil {
		return err
	}

	accepted, err := notification.NewNotification(
		claimed.Customer(), notification.KindOrderAccepted, claimed.ID(),
		"Request accepted", "A specialist has accepted your request.", now,
	)
	if err != nil {
		return err
	}

	var outbox []*notification.Notification
	created, err := uow.NotificationRepository().Record(ctx, accepted)
	if err != nil {
		return err
	}
	if created {
		outbox = append(outbox, accepted)
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendBestEffort(ctx, h.notifier, h.logger, outbox)
	return nil
}
