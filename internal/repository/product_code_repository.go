package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reklik/reklik-server/internal/model"
)

// ProductCodeRepo persists the per-unit uuid codes printed on packaging.
type ProductCodeRepo struct{ DB *sql.DB }

func NewProductCodeRepo(db *sql.DB) *ProductCodeRepo { return &ProductCodeRepo{DB: db} }

const codeColumns = "id,product_id,uuid_code,batch_number,is_active,generated_at"

// Create inserts a product code. A colliding uuid maps to ErrDuplicateCode.
func (r *ProductCodeRepo) Create(ctx context.Context, c model.ProductCode) (model.ProductCode, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO product_codes (product_id, uuid_code, batch_number, is_active, generated_at) VALUES (?,?,?,?,?)",
		c.ProductID, c.Code, nullable(c.BatchNumber), c.IsActive, c.GeneratedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.ProductCode{}, ErrDuplicateCode
		}
		return model.ProductCode{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ProductCode{}, err
	}
	c.ID = uint64(id)
	return c, nil
}

// GetByCode fetches a code by its uuid string.
func (r *ProductCodeRepo) GetByCode(ctx context.Context, code string) (model.ProductCode, error) {
	var c model.ProductCode
	var batch sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+codeColumns+" FROM product_codes WHERE uuid_code=? LIMIT 1", code).
		Scan(&c.ID, &c.ProductID, &c.Code, &batch, &c.IsActive, &c.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProductCode{}, ErrNotFound
	}
	if err != nil {
		return model.ProductCode{}, err
	}
	c.BatchNumber = batch.String
	return c, nil
}

// ListByProduct returns all codes generated for a product.
func (r *ProductCodeRepo) ListByProduct(ctx context.Context, productID uint64) ([]model.ProductCode, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+codeColumns+" FROM product_codes WHERE product_id=? ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := []model.ProductCode{}
	for rows.Next() {
		var c model.ProductCode
		var batch sql.NullString
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Code, &batch, &c.IsActive, &c.GeneratedAt); err != nil {
			return nil, err
		}
		c.BatchNumber = batch.String
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// Deactivate marks a code inactive so further scans of it are rejected.
func (r *ProductCodeRepo) Deactivate(ctx context.Context, code string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE product_codes SET is_active=0 WHERE uuid_code=? AND is_active=1", code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
