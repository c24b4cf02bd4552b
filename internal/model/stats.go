package model

import "time"

// ProductTraceability mirrors the vw_product_traceability view: the scan
// history summary of a single product code.
type ProductTraceability struct {
	Code         string     `json:"code"`
	ProductName  string     `json:"product_name"`
	Brand        string     `json:"brand,omitempty"`
	MaterialType string     `json:"material_type"`
	Company      string     `json:"company"`
	ScanCount    int        `json:"scan_count"`
	FirstScan    *time.Time `json:"first_scan,omitempty"`
	LastScan     *time.Time `json:"last_scan,omitempty"`
}

// MaterialStats mirrors the vw_recycling_stats_by_material view: aggregate
// recycling activity per material type.
type MaterialStats struct {
	MaterialType       string `json:"material_type"`
	ProductsRegistered int    `json:"products_registered"`
	TotalScans         int    `json:"total_scans"`
	ProductsRecycled   int    `json:"products_recycled"`
	UniqueUsers        int    `json:"unique_users"`
}
