package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/pkg/errs"
)

func newInReviewOrder(t *testing.T, specialistID kernel.UUID) *order.Order {
	t.Helper()
	o := newAssignedOrder(t, specialistID)
	require.NoError(t, o.Start(specialistID, time.Now().UTC()))
	require.NoError(t, o.Finish(specialistID, time.Now().UTC()))
	return o
}

func TestReviewOrderCommandHandler_Handle(t *testing.T) {
	specialistID := kernel.NewUUID()

	t.Run("should confirm finished work and notify the specialist", func(t *testing.T) {
		ctx := t.Context()
		inReview := newInReviewOrder(t, specialistID)
		cmd, err := commands.NewConfirmOrderCommand(inReview.ID(), inReview.Customer())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		notificationRepo := new(MockNotificationRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("NotificationRepository").Return(notificationRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		orderRepo.On("Get", ctx, inReview.ID()).Return(inReview, nil).Once()
		orderRepo.On("UpdateWithStatusGuard", ctx, inReview, order.InClientReview).Return(nil).Once()
		notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(true, nil).Once()
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewReviewOrderCommandHandler(factory, notifier, testLogger())
		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.ConfirmedByClient, inReview.Status())
	})

	t.Run("should send rejected work back to in progress", func(t *testing.T) {
		ctx := t.Context()
		inReview := newInReviewOrder(t, specialistID)
		cmd, err := commands.NewRejectFinishCommand(inReview.ID(), inReview.Customer(), "outlet still sparking")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		notificationRepo := new(MockNotificationRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("NotificationRepository").Return(notificationRepo)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		orderRepo.On("Get", ctx, inReview.ID()).Return(inReview, nil).Once()
		orderRepo.On("UpdateWithStatusGuard", ctx, inReview, order.InClientReview).Return(nil).Once()
		notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(true, nil).Once()
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewReviewOrderCommandHandler(factory, notifier, testLogger())
		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.InProgress, inReview.Status())
	})

	t.Run("should refuse a verdict from anyone but the customer", func(t *testing.T) {
		ctx := t.Context()
		inReview := newInReviewOrder(t, specialistID)
		cmd, err := commands.NewConfirmOrderCommand(inReview.ID(), specialistID)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("Rollback", ctx).Return(nil).Once()

		orderRepo.On("Get", ctx, inReview.ID()).Return(inReview, nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewReviewOrderCommandHandler(factory, notifier, testLogger())
		err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, order.InClientReview, inReview.Status())
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
