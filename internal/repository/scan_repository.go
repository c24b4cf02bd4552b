package repository

import (
	"context"
	"database/sql"

	"github.com/reklik/reklik-server/internal/model"
)

// ScanRepo persists scan logs.
type ScanRepo struct{ DB *sql.DB }

func NewScanRepo(db *sql.DB) *ScanRepo { return &ScanRepo{DB: db} }

const scanColumns = "id,product_code_id,user_id,scan_type,scan_city,scan_country,notes,scanned_at"

// Create inserts a scan log and returns it with the assigned ID.
func (r *ScanRepo) Create(ctx context.Context, s model.ScanLog) (model.ScanLog, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO scan_logs (product_code_id, user_id, scan_type, scan_city, scan_country, notes, scanned_at) VALUES (?,?,?,?,?,?,?)",
		s.ProductCodeID, s.UserID, s.ScanType, nullable(s.ScanCity), nullable(s.ScanCountry),
		nullable(s.Notes), s.ScannedAt)
	if err != nil {
		return model.ScanLog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ScanLog{}, err
	}
	s.ID = uint64(id)
	return s, nil
}

// ListByUser returns a user's scan history, most recent first.
func (r *ScanRepo) ListByUser(ctx context.Context, userID uint64) ([]model.ScanLog, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+scanColumns+" FROM scan_logs WHERE user_id=? ORDER BY scanned_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scans := []model.ScanLog{}
	for rows.Next() {
		var s model.ScanLog
		var city, country, notes sql.NullString
		if err := rows.Scan(&s.ID, &s.ProductCodeID, &s.UserID, &s.ScanType, &city, &country, &notes, &s.ScannedAt); err != nil {
			return nil, err
		}
		s.ScanCity = city.String
		s.ScanCountry = country.String
		s.Notes = notes.String
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
