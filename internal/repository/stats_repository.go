package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reklik/reklik-server/internal/model"
)

// StatsRepo serves the read-only reporting queries that back the public
// traceability and recycling-stats endpoints. The queries aggregate over
// scan_logs directly rather than relying on database views, so the schema
// stays migration-friendly.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// Traceability returns the scan history summary of one product code.
func (r *StatsRepo) Traceability(ctx context.Context, code string) (model.ProductTraceability, error) {
	var t model.ProductTraceability
	var brand sql.NullString
	var first, last sql.NullTime
	err := r.DB.QueryRowContext(ctx, `
		SELECT pc.uuid_code, p.name, p.brand, p.material_type, c.name,
		       COUNT(sl.id), MIN(sl.scanned_at), MAX(sl.scanned_at)
		FROM product_codes pc
		JOIN products p ON p.id = pc.product_id
		JOIN companies c ON c.id = p.company_id
		LEFT JOIN scan_logs sl ON sl.product_code_id = pc.id
		WHERE pc.uuid_code = ?
		GROUP BY pc.uuid_code, p.name, p.brand, p.material_type, c.name`,
		code).
		Scan(&t.Code, &t.ProductName, &brand, &t.MaterialType, &t.Company, &t.ScanCount, &first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProductTraceability{}, ErrNotFound
	}
	if err != nil {
		return model.ProductTraceability{}, err
	}
	t.Brand = brand.String
	if first.Valid {
		t.FirstScan = &first.Time
	}
	if last.Valid {
		t.LastScan = &last.Time
	}
	return t, nil
}

// MaterialStats returns aggregate recycling activity per material type.
func (r *StatsRepo) MaterialStats(ctx context.Context) ([]model.MaterialStats, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.material_type,
		       COUNT(DISTINCT p.id),
		       COUNT(sl.id),
		       COUNT(DISTINCT CASE WHEN sl.scan_type = 'recycle' THEN sl.product_code_id END),
		       COUNT(DISTINCT sl.user_id)
		FROM products p
		LEFT JOIN product_codes pc ON pc.product_id = p.id
		LEFT JOIN scan_logs sl ON sl.product_code_id = pc.id
		GROUP BY p.material_type
		ORDER BY p.material_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []model.MaterialStats{}
	for rows.Next() {
		var s model.MaterialStats
		if err := rows.Scan(&s.MaterialType, &s.ProductsRegistered, &s.TotalScans, &s.ProductsRecycled, &s.UniqueUsers); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
