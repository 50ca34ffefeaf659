// Package model provides domain models for the count service.
package model

import "strings"

// MaxQuantity is the largest quantity a tally row can hold.
// It keeps sums and totals far from integer overflow.
const MaxQuantity = 999_999_999

// InventoryItem is one counted line of the tally.
type InventoryItem struct {
	SKU string `bson:"sku" json:"sku"`
	Qty int    `bson:"qty" json:"qty"`
}

// TallyList is the ordered list of counted items, most recently added first.
// A SKU appears at most once.
type TallyList []InventoryItem

// NormalizeSKU trims surrounding whitespace and upper-cases a scanned code.
func NormalizeSKU(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Clone returns an independent copy of the list.
func (t TallyList) Clone() TallyList {
	if t == nil {
		return TallyList{}
	}
	out := make(TallyList, len(t))
	copy(out, t)
	return out
}

// IndexOf returns the position of sku in the list, or -1.
func (t TallyList) IndexOf(sku string) int {
	for i, item := range t {
		if item.SKU == sku {
			return i
		}
	}
	return -1
}

// Resolution is the operator's answer when a scanned SKU is already in the tally.
type Resolution string

const (
	ResolutionSum     Resolution = "sum"
	ResolutionReplace Resolution = "replace"
	ResolutionCancel  Resolution = "cancel"
)

// ParseResolution maps a client supplied value onto a Resolution.
// Unknown values resolve to cancel.
func ParseResolution(s string) Resolution {
	switch Resolution(strings.ToLower(strings.TrimSpace(s))) {
	case ResolutionSum:
		return ResolutionSum
	case ResolutionReplace:
		return ResolutionReplace
	default:
		return ResolutionCancel
	}
}

// QuantityMode tells the quantity prompt what the entered number will do.
type QuantityMode string

const (
	QuantityNew     QuantityMode = "new"
	QuantitySum     QuantityMode = "sum"
	QuantityReplace QuantityMode = "replace"
)

// ScanOutcome describes the result of a committed scan.
type ScanOutcome struct {
	Item     InventoryItem `json:"item"`
	Inserted bool          `json:"inserted"`
	Index    int           `json:"index"`
}
