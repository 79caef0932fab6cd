package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/commands"
	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
)

func TestNewCreateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	preTarget := kernel.NewUUID()

	t.Run("should create home visit command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeHome, 3, nil,
			"12 Arbat St", order.NewUrgentIntent(), nil,
		)

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "12 Arbat St", cmd.AddressQuery())
		assert.Nil(t, cmd.ServiceID())
	})

	t.Run("should require address query for home visits", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeHome, 3, nil,
			"", order.NewUrgentIntent(), nil,
		)

		assert.ErrorIs(t, err, commands.ErrAddressQueryIsRequired)
	})

	t.Run("should require pre-target for office visits", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeOffice, 3, nil,
			"", order.NewUrgentIntent(), nil,
		)

		assert.ErrorIs(t, err, commands.ErrPreTargetIsRequired)
	})

	t.Run("should accept office visit with pre-target", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeOffice, 3, nil,
			"", order.NewUrgentIntent(), &preTarget,
		)

		require.NoError(t, err)
		require.NotNil(t, cmd.PreTargetID())
		assert.True(t, cmd.PreTargetID().IsEqual(preTarget))
	})

	t.Run("should accept online engagement without address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeOnline, 3, nil,
			"", order.NewUrgentIntent(), nil,
		)

		assert.NoError(t, err)
	})

	t.Run("should reject invalid category", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			orderID, customerID, order.ModeOnline, 0, nil,
			"", order.NewUrgentIntent(), nil,
		)

		assert.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
