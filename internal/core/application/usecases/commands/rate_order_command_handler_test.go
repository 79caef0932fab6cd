package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/chat"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/pkg/errs"
)

func confirmedOrder(t *testing.T, specialistID kernel.UUID) *order.Order {
	t.Helper()
	o := newAssignedOrder(t, specialistID)
	now := time.Now().UTC()
	require.NoError(t, o.Start(specialistID, now))
	require.NoError(t, o.Finish(specialistID, now))
	require.NoError(t, o.Confirm(o.Customer(), now))
	return o
}

func TestRateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, false)
	engagement := confirmedOrder(t, sp.ID())
	channel, err := chat.NewChannel(engagement.ID(), engagement.Customer(), sp.ID())
	require.NoError(t, err)

	cmd, err := commands.NewRateOrderCommand(engagement.ID(), engagement.Customer(), 5, "great work")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	specialistRepo := new(MockSpecialistRepository)
	channelRepo := new(MockChannelRepository)
	notificationRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("SpecialistRepository").Return(specialistRepo)
	uow.On("ChannelRepository").Return(channelRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, engagement.ID()).Return(engagement, nil).Once()
	orderRepo.On("AddRating", ctx, mock.AnythingOfType("*order.Rating")).
		Run(func(args mock.Arguments) {
			rating := args.Get(1).(*order.Rating)
			assert.Equal(t, 5, rating.Score())
			assert.True(t, rating.Specialist().IsEqual(sp.ID()))
		}).
		Return(nil).Once()
	orderRepo.On("UpdateWithStatusGuard", ctx, engagement, order.ConfirmedByClient).Return(nil).Once()
	specialistRepo.On("ApplyRating", ctx, sp.ID(), 5).Return(nil).Once()
	channelRepo.On("GetByOrderID", ctx, engagement.ID()).Return(channel, nil).Once()
	channelRepo.On("Update", ctx, channel).Return(nil).Once()
	notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
		Return(true, nil).Once()
	notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRateOrderCommandHandler(factory, notifier, testLogger())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Closed, engagement.Status())
	assert.True(t, channel.Archived())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	specialistRepo.AssertExpectations(t)
	channelRepo.AssertExpectations(t)
}

func TestRateOrderCommandHandler_Handle_OnlyCustomerMayRate(t *testing.T) {
	ctx := t.Context()

	sp := restoreTestSpecialist(t, false)
	engagement := confirmedOrder(t, sp.ID())

	cmd, err := commands.NewRateOrderCommand(engagement.ID(), sp.ID(), 5, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	orderRepo.On("Get", ctx, engagement.ID()).Return(engagement, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRateOrderCommandHandler(factory, new(MockNotifier), testLogger())
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrNotAuthorized)
	orderRepo.AssertNotCalled(t, "AddRating", mock.Anything, mock.Anything)
}

func TestNewRateOrderCommand_ScoreOutOfRange(t *testing.T) {
	_, err := commands.NewRateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 6, "")
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), 0, "")
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
