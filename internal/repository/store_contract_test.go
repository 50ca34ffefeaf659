package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSessionStoreContract checks the behavior every SessionStore must share.
func runSessionStoreContract(t *testing.T, store SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("load of unknown device is empty", func(t *testing.T) {
		state, err := store.Load(ctx, "never-saved")
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("last save wins", func(t *testing.T) {
		first := model.SessionState{
			OperatorID:    "1234",
			WarehouseCode: "01",
			LocationCode:  "A-1",
			Tally:         model.TallyList{{SKU: "A", Qty: 1}},
			UpdatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}
		second := first.Clone()
		second.Tally = model.TallyList{{SKU: "B", Qty: 5}, {SKU: "A", Qty: 3}}
		second.UpdatedAt = first.UpdatedAt.Add(time.Minute)

		require.NoError(t, store.Save(ctx, "dev-1", first))
		require.NoError(t, store.Save(ctx, "dev-1", second))

		got, err := store.Load(ctx, "dev-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, second.OperatorID, got.OperatorID)
		assert.Equal(t, second.WarehouseCode, got.WarehouseCode)
		assert.Equal(t, second.LocationCode, got.LocationCode)
		assert.Equal(t, second.Tally, got.Tally)
		assert.True(t, second.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("devices are isolated", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "dev-a", model.SessionState{OperatorID: "1", Tally: model.TallyList{}}))
		require.NoError(t, store.Save(ctx, "dev-b", model.SessionState{OperatorID: "2", Tally: model.TallyList{}}))

		a, err := store.Load(ctx, "dev-a")
		require.NoError(t, err)
		b, err := store.Load(ctx, "dev-b")
		require.NoError(t, err)
		assert.Equal(t, "1", a.OperatorID)
		assert.Equal(t, "2", b.OperatorID)
	})

	t.Run("closed session round trips", func(t *testing.T) {
		closed := model.SessionState{WarehouseCode: "01", LocationCode: "A-1", Tally: model.TallyList{}}
		require.NoError(t, store.Save(ctx, "dev-closed", closed))

		got, err := store.Load(ctx, "dev-closed")
		require.NoError(t, err)
		assert.False(t, got.Active())
		assert.Empty(t, got.Tally)
		assert.Equal(t, "01", got.WarehouseCode)
	})
}
