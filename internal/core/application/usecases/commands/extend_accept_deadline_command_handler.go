package commands

import (
	"context"
	"time"

	"engage/internal/core/domain/model/order"
)

// ExtendAcceptDeadlineCommandHandler handles pushing out the acceptance
// deadline of a pending order before the sweeper expires it.
type ExtendAcceptDeadlineCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewExtendAcceptDeadlineCommandHandler creates a handler for deadline extensions.
func NewExtendAcceptDeadlineCommandHandler(uowFactory OrderUoWFactory) ExtendAcceptDeadlineCommandHandler {
	return ExtendAcceptDeadlineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the extension command. The guard on PENDING ensures an
// extension races cleanly against acceptance and the sweeper.
func (h ExtendAcceptDeadlineCommandHandler) Handle(ctx context.Context, cmd ExtendAcceptDeadlineCommand) error {
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

	if err = engagement.ExtendAcceptDeadline(cmd.ActorID(), cmd.Until(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, order.Pending); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
