package commands

import (
	"context"
	"time"

	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

// SetAvailabilityCommandHandler handles the availability toggle. Turning the
// toggle on requires an unblocked, verified account with an approved
// background check; turning it off is always allowed. The specialist's
// search index row is refreshed in the same transaction so search reflects
// the flip promptly.
type SetAvailabilityCommandHandler struct {
	uowFactory    SpecialistUoWFactory
	subscriptions ports.SubscriptionProvider
	gate          services.VisibilityGate
}

// NewSetAvailabilityCommandHandler creates a handler for the availability toggle.
func NewSetAvailabilityCommandHandler(
	uowFactory SpecialistUoWFactory,
	subscriptions ports.SubscriptionProvider,
	gate services.VisibilityGate,
) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory:    uowFactory,
		subscriptions: subscriptions,
		gate:          gate,
	}
}

// Handle processes the toggle command.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	sub, err := h.subscriptions.GetSubscription(ctx, cmd.SpecialistID())
	if err != nil {
		return err
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

	if cmd.On() {
		facts := h.gate.Evaluate(sp, sub, now)
		if !facts.CanToggle {
			return errs.NewPreconditionFailedError(
				"availability requires an unblocked, verified account with an approved background check")
		}
	}

	sp.SetAvailability(cmd.On())

	if err = uow.SpecialistRepository().Update(ctx, sp); err != nil {
		return err
	}

	if sp.Center() != nil {
		facts := h.gate.Evaluate(sp, sub, now)
		entry := ports.SearchIndexEntry{
			SpecialistID: sp.ID(),
			Lat:          sp.Center().Lat(),
			Lng:          sp.Center().Lng(),
			RadiusKm:     sp.RadiusKm(),
			AvailableNow: facts.VisibleNow,
			RefreshedAt:  now,
		}
		if err = uow.SpecialistRepository().UpsertSearchIndex(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
