// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns recycle scans into reward points.
package queue

// ScanRecordedEvent is published after a scan log is committed. It carries
// enough context for downstream consumers (rewards, analytics) to act
// without querying the primary database.
type ScanRecordedEvent struct {
	ScanLogID     uint64 `json:"scan_log_id"`
	UserID        uint64 `json:"user_id"`
	ProductCodeID uint64 `json:"product_code_id"`
	ProductID     uint64 `json:"product_id"`
	ProductName   string `json:"product_name"`
	MaterialType  string `json:"material_type"`
	ScanType      string `json:"scan_type"`
	ScannedAt     string `json:"scanned_at"`
	ScanCity      string `json:"scan_city,omitempty"`
	ScanCountry   string `json:"scan_country,omitempty"`
}
