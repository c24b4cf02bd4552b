package model

import "time"

// Scan types. An "info" scan is a consumer looking a product up; a
// "recycle" scan records the unit entering the recycling stream and is the
// only type that earns reward points.
const (
	ScanTypeInfo    = "info"
	ScanTypeRecycle = "recycle"
)

// ValidScanType reports whether t is a known scan type.
func ValidScanType(t string) bool {
	return t == ScanTypeInfo || t == ScanTypeRecycle
}

// ScanLog is one scan of a product code by a user, as stored in `scan_logs`.
type ScanLog struct {
	ID            uint64    `json:"id"`                     // scan_logs.id
	ProductCodeID uint64    `json:"product_code_id"`        // scan_logs.product_code_id
	UserID        uint64    `json:"user_id"`                // scan_logs.user_id
	ScanType      string    `json:"scan_type"`              // scan_logs.scan_type
	ScanCity      string    `json:"scan_city,omitempty"`    // scan_logs.scan_city
	ScanCountry   string    `json:"scan_country,omitempty"` // scan_logs.scan_country
	Notes         string    `json:"notes,omitempty"`        // scan_logs.notes
	ScannedAt     time.Time `json:"scanned_at"`             // scan_logs.scanned_at
}

// Reward is a points grant for a user, normally tied to a recycle scan.
type Reward struct {
	ID           uint64    `json:"id"`          // rewards.id
	UserID       uint64    `json:"user_id"`     // rewards.user_id
	PointsEarned int       `json:"points_earned"`
	Reason       string    `json:"reason"`      // rewards.reason
	ScanLogID    uint64    `json:"scan_log_id,omitempty"`
	AwardedAt    time.Time `json:"awarded_at"`
}
