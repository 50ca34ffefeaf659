package service

import (
	"testing"

	"github.com/guttosm/count-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		tally model.TallyList
		want  model.Summary
	}{
		{"empty", model.TallyList{}, model.Summary{}},
		{"nil", nil, model.Summary{}},
		{"single", model.TallyList{{SKU: "A", Qty: 3}}, model.Summary{DistinctCount: 1, TotalUnits: 3}},
		{"several", model.TallyList{{SKU: "A", Qty: 3}, {SKU: "B", Qty: 10}, {SKU: "C", Qty: 1}}, model.Summary{DistinctCount: 3, TotalUnits: 14}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.tally))
		})
	}
}

func TestSummarize_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qtys := rapid.SliceOf(rapid.IntRange(1, 1000)).Draw(t, "qtys")
		tally := make(model.TallyList, len(qtys))
		sum := 0
		for i, q := range qtys {
			tally[i] = model.InventoryItem{SKU: rapid.StringMatching(`[A-Z]{3}`).Draw(t, "sku") + string(rune('a'+i%26)), Qty: q}
			sum += q
		}

		s := Summarize(tally)
		if s.DistinctCount != len(tally) {
			t.Fatalf("distinct = %d, want %d", s.DistinctCount, len(tally))
		}
		if s.TotalUnits != sum {
			t.Fatalf("total = %d, want %d", s.TotalUnits, sum)
		}
		if s.TotalUnits < s.DistinctCount {
			t.Fatalf("total %d below distinct %d", s.TotalUnits, s.DistinctCount)
		}
	})
}
