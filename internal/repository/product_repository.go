package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reklik/reklik-server/internal/model"
)

// ProductRepo persists the product catalog.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id,company_id,name,brand,description,material_type,weight,recyclable,recycling_instructions,image_url,created_at,updated_at"

// Create inserts a product and returns it with the assigned ID.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (company_id, name, brand, description, material_type, weight, recyclable, recycling_instructions, image_url, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		p.CompanyID, p.Name, nullable(p.Brand), nullable(p.Description), p.MaterialType,
		p.WeightGrams, p.Recyclable, nullable(p.RecyclingInstructions), nullable(p.ImageURL),
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	p.ID = uint64(id)
	return p, nil
}

// GetByID fetches a single product.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// List returns products, optionally filtered by material type and/or
// company. Zero values mean no filter.
func (r *ProductRepo) List(ctx context.Context, materialType string, companyID uint64) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	where := ""
	args := []any{}
	if materialType != "" {
		where = " WHERE material_type=?"
		args = append(args, materialType)
	}
	if companyID != 0 {
		if where == "" {
			where = " WHERE company_id=?"
		} else {
			where += " AND company_id=?"
		}
		args = append(args, companyID)
	}
	rows, err := r.DB.QueryContext(ctx, query+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update rewrites a product's fields and refreshes updated_at.
func (r *ProductRepo) Update(ctx context.Context, p model.Product) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE products SET company_id=?, name=?, brand=?, description=?, material_type=?, weight=?, recyclable=?, recycling_instructions=?, image_url=?, updated_at=? WHERE id=?",
		p.CompanyID, p.Name, nullable(p.Brand), nullable(p.Description), p.MaterialType,
		p.WeightGrams, p.Recyclable, nullable(p.RecyclingInstructions), nullable(p.ImageURL),
		p.UpdatedAt, p.ID)
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

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
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

// scanProduct reads one product row through either *sql.Row.Scan or
// *sql.Rows.Scan.
func scanProduct(scan func(dest ...any) error) (model.Product, error) {
	var p model.Product
	var brand, desc, instructions, imageURL sql.NullString
	var weight sql.NullFloat64
	err := scan(&p.ID, &p.CompanyID, &p.Name, &brand, &desc, &p.MaterialType,
		&weight, &p.Recyclable, &instructions, &imageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Product{}, err
	}
	p.Brand = brand.String
	p.Description = desc.String
	p.WeightGrams = weight.Float64
	p.RecyclingInstructions = instructions.String
	p.ImageURL = imageURL.String
	return p, nil
}
