package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2026, 4, 14, 9, 30, 15, 0, time.UTC)

func reportWithRows(n int) model.ReportDocument {
	doc := model.ReportDocument{
		GeneratedAt:   generatedAt,
		WarehouseCode: "01",
		LocationCode:  "A-01",
		OperatorID:    "1234",
		DistinctCount: n,
	}
	for i := 0; i < n; i++ {
		doc.Rows = append(doc.Rows, model.ReportRow{SKU: fmt.Sprintf("SKU%03d", i), Qty: i + 1})
		doc.TotalUnits += i + 1
	}
	return doc
}

func TestPDFRenderer_Render(t *testing.T) {
	out, name, err := NewPDFRenderer().Render(reportWithRows(3))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("Report_01_%d.pdf", generatedAt.UnixMilli()), name)
	assert.True(t, len(out) > 5)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestPDFRenderer_Pages(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		pages int
	}{
		{name: "empty tally", rows: 0, pages: 1},
		{name: "fits on one page", rows: 10, pages: 1},
		{name: "signatures pushed to next page", rows: 19, pages: 2},
		{name: "table spans pages", rows: 60, pages: 3},
	}

	r := NewPDFRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf := r.draw(reportWithRows(tt.rows))
			require.NoError(t, pdf.Error())
			assert.Equal(t, tt.pages, pdf.PageNo())
		})
	}
}

func TestFilename_SanitizesWarehouse(t *testing.T) {
	doc := model.ReportDocument{WarehouseCode: "WH 01/B", GeneratedAt: generatedAt}
	assert.Equal(t, fmt.Sprintf("Report_WH_01_B_%d.pdf", generatedAt.UnixMilli()), Filename(doc))
}
