package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/domain/services"
	"engage/internal/core/ports"
	"engage/internal/pkg/errs"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, false)
	pending := newPendingOrder(t, nil)
	cmd, err := commands.NewAcceptOrderCommand(pending.ID(), sp.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	specialistRepo := new(MockSpecialistRepository)
	channelRepo := new(MockChannelRepository)
	notificationRepo := new(MockNotificationRepository)
	uow := new(MockUoW)
	subscriptions := new(MockSubscriptionProvider)
	notifier := new(MockNotifier)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ChannelRepository").Return(channelRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", ctx, pending, order.Pending).Return(nil).Once()
	channelRepo.On("FindOrCreate", ctx, mock.AnythingOfType("*chat.Channel")).
		Return(nil, nil).Once()
	notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
		Return(true, nil).Once()
	notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, subscriptions, notifier, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Assigned, pending.Status())
	require.NotNil(t, pending.Specialist())
	assert.True(t, pending.Specialist().IsEqual(sp.ID()))
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	channelRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, false)
	pending := newPendingOrder(t, nil)
	cmd, err := commands.NewAcceptOrderCommand(pending.ID(), sp.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	specialistRepo := new(MockSpecialistRepository)
	uow := new(MockUoW)
	subscriptions := new(MockSubscriptionProvider)
	notifier := new(MockNotifier)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()
	orderRepo.On("UpdateWithStatusGuard", ctx, pending, order.Pending).
		Return(ports.ErrConcurrentModification).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, subscriptions, notifier, testLogger())
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, ports.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_SubscriptionNotEligible(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, false)
	pending := newPendingOrder(t, nil)
	cmd, err := commands.NewAcceptOrderCommand(pending.ID(), sp.ID())
	require.NoError(t, err)

	subscriptions := new(MockSubscriptionProvider)
	past := time.Now().Add(-time.Hour)
	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionTrial, TrialEndsAt: &past}, nil).Once()

	factory := new(MockUoWFactory)

	handler := commands.NewAcceptOrderCommandHandler(factory, subscriptions, new(MockNotifier), testLogger())
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrNotEligible)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptOrderCommandHandler_Handle_PreTargetMismatch(t *testing.T) {
	ctx := t.Context()

	target := restoreTestSpecialist(t, false)
	intruder := restoreTestSpecialist(t, false)
	targetID := target.ID()
	pending := newPendingOrder(t, &targetID)

	cmd, err := commands.NewAcceptOrderCommand(pending.ID(), intruder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	specialistRepo := new(MockSpecialistRepository)
	uow := new(MockUoW)
	subscriptions := new(MockSubscriptionProvider)

	subscriptions.On("GetSubscription", ctx, intruder.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, intruder.ID()).Return(intruder, nil).Once()
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, subscriptions, new(MockNotifier), testLogger())
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, order.Pending, pending.Status())
	orderRepo.AssertNotCalled(t, "UpdateWithStatusGuard", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_BlockedAccount(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, true)
	pending := newPendingOrder(t, nil)
	cmd, err := commands.NewAcceptOrderCommand(pending.ID(), sp.ID())
	require.NoError(t, err)

	specialistRepo := new(MockSpecialistRepository)
	uow := new(MockUoW)
	subscriptions := new(MockSubscriptionProvider)

	subscriptions.On("GetSubscription", ctx, sp.ID()).
		Return(services.Subscription{Status: services.SubscriptionActive}, nil).Once()

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	specialistRepo.On("Get", ctx, sp.ID()).Return(sp, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, subscriptions, new(MockNotifier), testLogger())
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrNotEligible)
}
