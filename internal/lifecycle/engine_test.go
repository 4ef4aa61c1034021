package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrisetu/agrisetu-backend/pkg/enums"
	apperrors "github.com/agrisetu/agrisetu-backend/pkg/errors"
)

func TestTableFor_KnownAndUnknown(t *testing.T) {
	for _, entity := range []enums.EntityType{
		enums.EntityTypeOrder,
		enums.EntityTypeLabourBooking,
		enums.EntityTypeTransportBooking,
		enums.EntityTypeDeliveryAssignment,
	} {
		table, err := TableFor(entity)
		require.NoError(t, err, "entity %s", entity)
		assert.Equal(t, entity, table.Entity)
	}

	_, err := TableFor(enums.EntityType("cart"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestOrderHappyPath(t *testing.T) {
	table, err := TableFor(enums.EntityTypeOrder)
	require.NoError(t, err)

	path := []string{"placed", "processing", "confirmed", "packed", "shipped", "out_for_delivery", "delivered", "completed"}
	for i := 0; i < len(path)-1; i++ {
		outcome, err := table.Apply(path[i], path[i+1])
		require.NoError(t, err, "%s -> %s", path[i], path[i+1])
		assert.Equal(t, path[i+1] == "completed", outcome.SettlementTriggering)
	}
}

func TestOrderCancellationWindow(t *testing.T) {
	table, err := TableFor(enums.EntityTypeOrder)
	require.NoError(t, err)

	for _, from := range []string{"placed", "processing", "confirmed", "packed", "shipped", "out_for_delivery"} {
		outcome, err := table.Apply(from, "cancelled")
		require.NoError(t, err, "cancel from %s", from)
		assert.True(t, outcome.Refunding)
		assert.False(t, outcome.SettlementTriggering)
	}

	// Once delivered, only return is possible, not cancellation.
	_, err = table.Apply("delivered", "cancelled")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeStateConflict))

	outcome, err := table.Apply("delivered", "returned")
	require.NoError(t, err)
	assert.True(t, outcome.Refunding)
}

func TestOrderIllegalJumps(t *testing.T) {
	table, err := TableFor(enums.EntityTypeOrder)
	require.NoError(t, err)

	cases := [][2]string{
		{"placed", "delivered"},
		{"placed", "completed"},
		{"packed", "delivered"},
		{"shipped", "returned"},
	}
	for _, tc := range cases {
		_, err := table.Apply(tc[0], tc[1])
		require.Error(t, err, "%s -> %s", tc[0], tc[1])
		assert.True(t, apperrors.IsCode(err, apperrors.CodeStateConflict))
	}
}

func TestTerminalStatusesRejectEverything(t *testing.T) {
	table, err := TableFor(enums.EntityTypeOrder)
	require.NoError(t, err)

	for _, terminal := range []string{"completed", "cancelled", "returned"} {
		assert.True(t, table.IsTerminal(terminal), "%s should be terminal", terminal)
		_, err := table.Apply(terminal, "placed")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeStateConflict))
	}
}

func TestLabourBookingTable(t *testing.T) {
	table, err := TableFor(enums.EntityTypeLabourBooking)
	require.NoError(t, err)

	path := []string{"pending", "assigned", "accepted", "work_started", "completed"}
	for i := 0; i < len(path)-1; i++ {
		outcome, err := table.Apply(path[i], path[i+1])
		require.NoError(t, err)
		assert.Equal(t, path[i+1] == "completed", outcome.SettlementTriggering)
	}

	for _, from := range []string{"pending", "assigned", "accepted", "work_started"} {
		outcome, err := table.Apply(from, "cancelled")
		require.NoError(t, err, "cancel from %s", from)
		assert.True(t, outcome.Refunding)
	}

	_, err = table.Apply("pending", "completed")
	require.Error(t, err)
}

func TestTransportBookingUsesInProgress(t *testing.T) {
	table, err := TableFor(enums.EntityTypeTransportBooking)
	require.NoError(t, err)

	outcome, err := table.Apply("accepted", "in_progress")
	require.NoError(t, err)
	assert.False(t, outcome.SettlementTriggering)

	outcome, err = table.Apply("in_progress", "completed")
	require.NoError(t, err)
	assert.True(t, outcome.SettlementTriggering)

	_, err = table.Apply("accepted", "work_started")
	require.Error(t, err)
}

func TestDeliveryAssignmentTable(t *testing.T) {
	table, err := TableFor(enums.EntityTypeDeliveryAssignment)
	require.NoError(t, err)

	outcome, err := table.Apply("picked_up", "delivered")
	require.NoError(t, err)
	assert.True(t, outcome.SettlementTriggering)

	outcome, err = table.Apply("picked_up", "failed")
	require.NoError(t, err)
	assert.False(t, outcome.SettlementTriggering)

	// Cancellation closes before pickup.
	for _, from := range []string{"pending", "assigned", "accepted"} {
		_, err := table.Apply(from, "cancelled")
		require.NoError(t, err, "cancel from %s", from)
	}
	_, err = table.Apply("picked_up", "cancelled")
	require.Error(t, err)

	assert.True(t, table.IsTerminal("delivered"))
	assert.True(t, table.IsTerminal("failed"))
}

func TestKnows(t *testing.T) {
	table, err := TableFor(enums.EntityTypeOrder)
	require.NoError(t, err)

	assert.True(t, table.Knows("placed"))
	assert.True(t, table.Knows("returned"))
	assert.False(t, table.Knows("work_started"))
}
