package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"engage/internal/core/domain/model/kernel"
	"engage/internal/core/domain/model/order"
	"engage/internal/core/domain/model/specialist"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	point, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	address, err := kernel.NewAddress("12 Arbat St, Moscow", point, "place-1")
	require.NoError(t, err)
	return address
}

func newPendingOrder(t *testing.T, preTarget *kernel.UUID) *order.Order {
	t.Helper()
	address := testAddress(t)
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), order.ModeHome,
		3, kernel.NewUUID(), &address, order.NewUrgentIntent(),
		preTarget, time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func newAssignedOrder(t *testing.T, specialistID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingOrder(t, nil)
	require.NoError(t, o.Accept(specialistID, time.Now().UTC()))
	return o
}

func restoreTestSpecialist(t *testing.T, blocked bool) *specialist.Specialist {
	t.Helper()
	center, err := kernel.NewGeoPoint(55.75, 37.62)
	require.NoError(t, err)
	sp, err := specialist.RestoreSpecialist(
		kernel.NewUUID(), "Pavel K.",
		blocked, true, true, true,
		&center, 10, nil, nil,
		[]specialist.CategoryLink{{CategoryID: 3}},
		specialist.NewUnrestrictedSchedule(),
		4.5, 10, 0,
	)
	require.NoError(t, err)
	return sp
}
