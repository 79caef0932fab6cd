package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/specialist"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

func TestSetAvailabilityCommandHandler_Handle_ToggleOn(t *testing.T) {
	ctx := t.Context()

	center, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	sp, err := specialist.RestoreSpecialist(
		kernel.NewUUID(), "Ivan D.",
		false, true, true, false,
		&center, 10, nil, nil,
		[]specialist.CategoryLink{{CategoryID: 3}},
		specialist.NewUnrestrictedSchedule(),
		0, 0, 0,
	)
	require.NoError(t, err)

	cmd, err := commands.NewSetAvailabilityCommand(sp.ID(), true)
	require.NoError(t, err)

	specialistRepo := new(MockSpecialistRepository)
	subscriptions := new(MockSubscriptionProvider)
	uow := new(MockUoW)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()
	specialistRepo.On("Update", ctx, sp).Return(nil).Once()
	specialistRepo.On("UpsertSearchIndex", ctx, mock.AnythingOfType("ports.SearchIndexEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(ports.SearchIndexEntry)
			assert.True(t, entry.AvailableNow)
			assert.InDelta(t, 55.75, entry.Lat, 1e-9)
			assert.InDelta(t, 10.0, entry.RadiusKm, 1e-9)
		}).
		Return(nil).Once()

	factory := new(MockSpecialistUoWFactory)
	factory.On("Create").Return(uow).Once()

	gate := services.NewVisibilityGate(time.UTC)
	handler := commands.NewSetAvailabilityCommandHandler(factory, subscriptions, gate)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, sp.ToggleOn())
	specialistRepo.AssertExpectations(t)
}

func TestSetAvailabilityCommandHandler_Handle_ToggleDeniedForUnverified(t *testing.T) {
	ctx := t.Context()

	center, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	sp, err := specialist.RestoreSpecialist(
		kernel.NewUUID(), "Ivan D.",
		false, false, true, false, // identity not verified
		&center, 10, nil, nil,
		nil,
		specialist.NewUnrestrictedSchedule(),
		0, 0, 0,
	)
	require.NoError(t, err)

	cmd, err := commands.NewSetAvailabilityCommand(sp.ID(), true)
	require.NoError(t, err)

	specialistRepo := new(MockSpecialistRepository)
	subscriptions := new(MockSubscriptionProvider)
	uow := new(MockUoW)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()

	factory := new(MockSpecialistUoWFactory)
	factory.On("Create").Return(uow).Once()

	gate := services.NewVisibilityGate(time.UTC)
	handler := commands.NewSetAvailabilityCommandHandler(factory, subscriptions, gate)
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.False(t, sp.ToggleOn())
	specialistRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSetAvailabilityCommandHandler_Handle_ToggleOffAlwaysAllowed(t *testing.T) {
	ctx := t.Context()

	center, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	sp, err := specialist.RestoreSpecialist(
		kernel.NewUUID(), "Ivan D.",
		true, false, false, true, // blocked but currently toggled on
		&center, 10, nil, nil,
		nil,
		specialist.NewUnrestrictedSchedule(),
		0, 0, 0,
	)
	require.NoError(t, err)

	cmd, err := commands.NewSetAvailabilityCommand(sp.ID(), false)
	require.NoError(t, err)

	specialistRepo := new(MockSpecialistRepository)
	subscriptions := new(MockSubscriptionProvider)
	uow := new(MockUoW)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionNone}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()
	specialistRepo.On("Update", ctx, sp).Return(nil).Once()
	specialistRepo.On("UpsertSearchIndex", ctx, mock.AnythingOfType("ports.SearchIndexEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(ports.SearchIndexEntry)
			assert.False(t, entry.AvailableNow)
		}).
		Return(nil).Once()

	factory := new(MockSpecialistUoWFactory)
	factory.On("Create").Return(uow).Once()

	gate := services.NewVisibilityGate(time.UTC)
	handler := commands.NewSetAvailabilityCommandHandler(factory, subscriptions, gate)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, sp.ToggleOn())
}
