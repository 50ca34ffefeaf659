package service

import (
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
)

// BuildReport projects a session into the printable count report.
// Rows keep tally order.
func BuildReport(state model.SessionState, now time.Time) model.ReportDocument {
	summary := Summarize(state.Tally)
	rows := make([]model.ReportRow, len(state.Tally))
	for i, item := range state.Tally {
		rows[i] = model.ReportRow{SKU: item.SKU, Qty: item.Qty}
	}

	return model.ReportDocument{
		GeneratedAt:   now,
		WarehouseCode: state.WarehouseCode,
		LocationCode:  state.LocationCode,
		OperatorID:    state.OperatorID,
		DistinctCount: summary.DistinctCount,
		TotalUnits:    summary.TotalUnits,
		Rows:          rows,
	}
}
