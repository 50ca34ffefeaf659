package model

import "time"

// SessionState is everything a counting device persists between restarts.
type SessionState struct {
	OperatorID    string    `bson:"operator_id" json:"operator_id"`
	WarehouseCode string    `bson:"warehouse_code" json:"warehouse_code"`
	LocationCode  string    `bson:"location_code" json:"location_code"`
	Tally         TallyList `bson:"tally" json:"tally"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Active reports whether an operator is logged in.
func (s SessionState) Active() bool {
	return s.OperatorID != ""
}

// Clone returns a deep copy of the state.
func (s SessionState) Clone() SessionState {
	s.Tally = s.Tally.Clone()
	return s
}

// Summary holds the aggregate figures of a tally.
type Summary struct {
	DistinctCount int `json:"distinct_count"`
	TotalUnits    int `json:"total_units"`
}
