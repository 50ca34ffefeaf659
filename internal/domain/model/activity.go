package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity actions recorded for every session mutation.
const (
	ActionLogin       = "login"
	ActionScanInsert  = "scan_insert"
	ActionScanSum     = "scan_sum"
	ActionScanReplace = "scan_replace"
	ActionEdit        = "edit"
	ActionDelete      = "delete"
	ActionSync        = "sync"
	ActionSyncFailed  = "sync_failed"
	ActionLabel       = "label"
)

// ActivityEntry is an audit record of a change made on a counting device.
type ActivityEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	DeviceID   string                 `bson:"device_id" json:"device_id"`
	OperatorID string                 `bson:"operator_id,omitempty" json:"operator_id,omitempty"`
	Action     string                 `bson:"action" json:"action"`
	SKU        string                 `bson:"sku,omitempty" json:"sku,omitempty"`
	Qty        int                    `bson:"qty,omitempty" json:"qty,omitempty"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the entry's Fields map.
func (e *ActivityEntry) WithField(key string, value interface{}) *ActivityEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// ActivityQueryOptions provides options for querying activity.
type ActivityQueryOptions struct {
	DeviceID   string
	OperatorID string
	Action     string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
