package model

import "time"

// ReportRow is one line of the printable count report.
type ReportRow struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// ReportDocument is the data behind the printable count report.
type ReportDocument struct {
	GeneratedAt   time.Time   `json:"generated_at"`
	WarehouseCode string      `json:"warehouse_code"`
	LocationCode  string      `json:"location_code"`
	OperatorID    string      `json:"operator_id"`
	DistinctCount int         `json:"distinct_count"`
	TotalUnits    int         `json:"total_units"`
	Rows          []ReportRow `json:"rows"`
}

// SyncLine is one counted line in an inventory counting document.
type SyncLine struct {
	LineNum         int    `json:"LineNum"`
	ItemCode        string `json:"ItemCode"`
	CountedQuantity int    `json:"CountedQuantity"`
	WarehouseCode   string `json:"WarehouseCode"`
}

// SyncPayload is the inventory counting document posted to the ERP.
// Field names follow the Service Layer InventoryCountings entity.
type SyncPayload struct {
	CountDate string     `json:"CountDate"`
	CountTime string     `json:"CountTime"`
	Remarks   string     `json:"Remarks"`
	Lines     []SyncLine `json:"InventoryCountingLines"`
}

// SyncReceipt is what the ERP returned for an accepted counting document.
type SyncReceipt struct {
	DocumentEntry int    `json:"document_entry,omitempty"`
	Reference     string `json:"reference,omitempty"`
}
