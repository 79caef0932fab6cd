package commands

import (
	"context"
	"log/slog"
	"time"

	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
)

// refreshPageSize is the number of specialists re-indexed per transaction.
const refreshPageSize = 200

// RefreshSearchIndexCommandHandler rebuilds search index rows from source
// facts. The index is a projection: availability verdicts are recomputed
// against the current clock and subscription state, catching schedule edges
// and trial expiries that no explicit write would have touched.
type RefreshSearchIndexCommandHandler struct {
	uowFactory    SpecialistUoWFactory
	subscriptions ports.SubscriptionProvider
	gate          services.VisibilityGate
	logger        *slog.Logger
}

// NewRefreshSearchIndexCommandHandler creates a handler for index refreshes.
func NewRefreshSearchIndexCommandHandler(
	uowFactory SpecialistUoWFactory,
	subscriptions ports.SubscriptionProvider,
	gate services.VisibilityGate,
	logger *slog.Logger,
) RefreshSearchIndexCommandHandler {
	return RefreshSearchIndexCommandHandler{
		uowFactory:    uowFactory,
		subscriptions: subscriptions,
		gate:          gate,
		logger:        logger.With("component", "refresh_search_index_handler"),
	}
}

// Handle walks the specialist population in pages and rewrites each index
// row. One specialist's failure is logged and skipped.
func (h RefreshSearchIndexCommandHandler) Handle(ctx context.Context, cmd RefreshSearchIndexCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	for offset := 0; ; offset += refreshPageSize {
		count, err := h.refreshPage(ctx, now, offset)
		if err != nil {
			return err
		}
		if count < refreshPageSize {
			return nil
		}
	}
}

func (h RefreshSearchIndexCommandHandler) refreshPage(ctx context.Context, now time.Time, offset int) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	page, err := uow.SpecialistRepository().GetPage(ctx, refreshPageSize, offset)
	if err != nil {
		return 0, err
	}

	for _, sp := range page {
		if err := h.refreshOne(ctx, uow, sp, now); err != nil {
			h.logger.WarnContext(ctx, "Search index refresh failed for specialist",
				"specialist", sp.ID().String(), "error", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(page), nil
}

func (h RefreshSearchIndexCommandHandler) refreshOne(
	ctx context.Context,
	uow SpecialistUoW,
	sp *specialist.Specialist,
	now time.Time,
) error {
	if sp.Center() == nil {
		return nil // nothing to index without a service center
	}

	sub, err := h.subscriptions.GetSubscription(ctx, sp.ID())
	if err != nil {
		return err
	}
	facts := h.gate.Evaluate(sp, sub, now)

	return uow.SpecialistRepository().UpsertSearchIndex(ctx, ports.SearchIndexEntry{
		SpecialistID: sp.ID(),
		Lat:          sp.Center().Lat(),
		Lng:          sp.Center().Lng(),
		RadiusKm:     sp.RadiusKm(),
		AvailableNow: facts.VisibleNow,
		RefreshedAt:  now,
	})
}
