package commands

import (
	"context"
	"time"
)

// ProgressOrderCommandHandler handles start, pause and resume reports from
// the bound specialist. Each transition is persisted with a status guard so
// a stale report loses against a concurrent lifecycle change.
type ProgressOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewProgressOrderCommandHandler creates a handler for progress reports.
func NewProgressOrderCommandHandler(uowFactory OrderUoWFactory) ProgressOrderCommandHandler {
	return ProgressOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the progress command.
func (h ProgressOrderCommandHandler) Handle(ctx context.Context, cmd ProgressOrderCommand) error {
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
	switch cmd.Action() {
	case ProgressStart:
		err = engagement.Start(cmd.ActorID(), now)
	case ProgressPause:
		err = engagement.Pause(cmd.ActorID(), now)
	case ProgressResume:
		err = engagement.Resume(cmd.ActorID(), now)
	default:
		err = ErrProgressOrderCommandIsNotConstructed
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().UpdateWithStatusGuard(ctx, engagement, prior); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
