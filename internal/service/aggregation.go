package service

import "github.com/guttosm/count-service/internal/domain/model"

// Summarize returns the distinct SKU count and the total counted units of a tally.
func Summarize(tally model.TallyList) model.Summary {
	s := model.Summary{DistinctCount: len(tally)}
	for _, item := range tally {
		s.TotalUnits += item.Qty
	}
	return s
}
