package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSyncPayload(t *testing.T) {
	state := model.SessionState{
		OperatorID:    "1234",
		WarehouseCode: "01",
		LocationCode:  "A-01",
		Tally:         model.TallyList{{SKU: "B", Qty: 5}, {SKU: "A", Qty: 2}},
	}

	payload, err := BuildSyncPayload(state, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "2026-04-14", payload.CountDate)
	assert.Equal(t, "09:30:15", payload.CountTime)
	assert.Equal(t, "Inventory count from count-service - Warehouse 01 Location: A-01", payload.Remarks)
	assert.Equal(t, []model.SyncLine{
		{LineNum: 0, ItemCode: "B", CountedQuantity: 5, WarehouseCode: "01"},
		{LineNum: 1, ItemCode: "A", CountedQuantity: 2, WarehouseCode: "01"},
	}, payload.Lines)
}

func TestBuildSyncPayload_UsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	state := model.SessionState{WarehouseCode: "01", Tally: model.TallyList{{SKU: "A", Qty: 1}}}

	payload, err := BuildSyncPayload(state, time.Date(2026, 1, 1, 1, 2, 3, 0, time.UTC).In(loc))
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", payload.CountDate)
	assert.Equal(t, "21:02:03", payload.CountTime)
}

func TestBuildSyncPayload_Empty(t *testing.T) {
	_, err := BuildSyncPayload(model.SessionState{OperatorID: "1"}, fixedNow)
	assert.ErrorIs(t, err, ErrEmptySync)
}

func TestSyncPayload_JSONShape(t *testing.T) {
	payload, err := BuildSyncPayload(model.SessionState{
		WarehouseCode: "01",
		LocationCode:  "L",
		Tally:         model.TallyList{{SKU: "A", Qty: 1}},
	}, fixedNow)
	require.NoError(t, err)

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"CountDate": "2026-04-14",
		"CountTime": "09:30:15",
		"Remarks": "Inventory count from count-service - Warehouse 01 Location: L",
		"InventoryCountingLines": [
			{"LineNum": 0, "ItemCode": "A", "CountedQuantity": 1, "WarehouseCode": "01"}
		]
	}`, string(raw))
}
