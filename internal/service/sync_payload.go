package service

import (
	"fmt"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
)

const (
	countDateLayout = "2006-01-02"
	countTimeLayout = "15:04:05"
)

// BuildSyncPayload projects a session into an inventory counting document.
// Date and time are taken from now in its own location.
func BuildSyncPayload(state model.SessionState, now time.Time) (model.SyncPayload, error) {
	if len(state.Tally) == 0 {
		return model.SyncPayload{}, ErrEmptySync
	}

	lines := make([]model.SyncLine, len(state.Tally))
	for i, item := range state.Tally {
		lines[i] = model.SyncLine{
			LineNum:         i,
			ItemCode:        item.SKU,
			CountedQuantity: item.Qty,
			WarehouseCode:   state.WarehouseCode,
		}
	}

	return model.SyncPayload{
		CountDate: now.Format(countDateLayout),
		CountTime: now.Format(countTimeLayout),
		Remarks:   fmt.Sprintf("Inventory count from count-service - Warehouse %s Location: %s", state.WarehouseCode, state.LocationCode),
		Lines:     lines,
	}, nil
}
