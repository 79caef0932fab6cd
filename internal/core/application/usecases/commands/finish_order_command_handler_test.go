package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/notification"
	"engage/internal/core/domain/model/order"
	"engage/internal/pkg/errs"
)

func TestFinishOrderCommandHandler_Handle(t *testing.T) {
	specialistID := kernel.NewUUID()

	t.Run("should hand finished work to the customer for review", func(t *testing.T) {
		ctx := t.Context()
		inProgress := newAssignedOrder(t, specialistID)
		require.NoError(t, inProgress.Start(specialistID, time.Now().UTC()))
		cmd, err := commands.NewFinishOrderCommand(inProgress.ID(), specialistID)
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

		orderRepo.On("Get", ctx, inProgress.ID()).Return(inProgress, nil).Once()
		orderRepo.On("UpdateWithStatusGuard", ctx, inProgress, order.InProgress).Return(nil).Once()
		notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(true, nil).Once()
		notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewFinishOrderCommandHandler(factory, notifier, testLogger())
		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.InClientReview, inProgress.Status())
	})

	t.Run("should not push the customer twice for the same finish", func(t *testing.T) {
		ctx := t.Context()
		inProgress := newAssignedOrder(t, specialistID)
		require.NoError(t, inProgress.Start(specialistID, time.Now().UTC()))
		cmd, err := commands.NewFinishOrderCommand(inProgress.ID(), specialistID)
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

		orderRepo.On("Get", ctx, inProgress.ID()).Return(inProgress, nil).Once()
		orderRepo.On("UpdateWithStatusGuard", ctx, inProgress, order.InProgress).Return(nil).Once()
		// Duplicate natural key: the row already exists, so no push goes out.
		notificationRepo.On("Record", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(false, nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewFinishOrderCommandHandler(factory, notifier, testLogger())
		require.NoError(t, handler.Handle(ctx, cmd))
		notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("should push a second finish after a rejected review", func(t *testing.T) {
		ctx := t.Context()
		inProgress := newAssignedOrder(t, specialistID)
		require.NoError(t, inProgress.Start(specialistID, time.Now().UTC()))

		var keys []string
		finishOnce := func() {
			cmd, err := commands.NewFinishOrderCommand(inProgress.ID(), specialistID)
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

			orderRepo.On("Get", ctx, inProgress.ID()).Return(inProgress, nil).Once()
			orderRepo.On("UpdateWithStatusGuard", ctx, inProgress, order.InProgress).Return(nil).Once()
			notificationRepo.On("Record", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
				keys = append(keys, n.NaturalKey())
				return true
			})).Return(true, nil).Once()
			notifier.On("Send", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewFinishOrderCommandHandler(factory, notifier, testLogger())
			require.NoError(t, handler.Handle(ctx, cmd))
		}

		finishOnce()
		require.NoError(t, inProgress.RejectFinish(inProgress.Customer(), "not done yet", time.Now().UTC()))
		finishOnce()

		require.Len(t, keys, 2)
		assert.NotEqual(t, keys[0], keys[1])
	})

	t.Run("should refuse a finish from a stranger", func(t *testing.T) {
		ctx := t.Context()
		inProgress := newAssignedOrder(t, specialistID)
		require.NoError(t, inProgress.Start(specialistID, time.Now().UTC()))
		cmd, err := commands.NewFinishOrderCommand(inProgress.ID(), kernel.NewUUID())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		notifier := new(MockNotifier)
		uow := new(MockUoW)

		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("Rollback", ctx).Return(nil).Once()

		orderRepo.On("Get", ctx, inProgress.ID()).Return(inProgress, nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		handler := commands.NewFinishOrderCommandHandler(factory, notifier, testLogger())
		err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, order.InProgress, inProgress.Status())
	})
}
