package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reklik/reklik-server/internal/model"
)

// CompanyRepo persists producer companies.
type CompanyRepo struct{ DB *sql.DB }

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{DB: db} }

const companyColumns = "id,name,email,contact_person,phone,address,created_at,updated_at"

// Create inserts a company and returns it with the assigned ID.
func (r *CompanyRepo) Create(ctx context.Context, c model.Company) (model.Company, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO companies (name, email, contact_person, phone, address, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		c.Name, c.Email, nullable(c.ContactPerson), nullable(c.Phone), nullable(c.Address),
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return model.Company{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Company{}, err
	}
	c.ID = uint64(id)
	return c, nil
}

// GetByID fetches a single company.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (model.Company, error) {
	var c model.Company
	var contact, phone, address sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+companyColumns+" FROM companies WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Email, &contact, &phone, &address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Company{}, ErrNotFound
	}
	if err != nil {
		return model.Company{}, err
	}
	c.ContactPerson = contact.String
	c.Phone = phone.String
	c.Address = address.String
	return c, nil
}

// List returns all companies.
func (r *CompanyRepo) List(ctx context.Context) ([]model.Company, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+companyColumns+" FROM companies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		var contact, phone, address sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &contact, &phone, &address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.ContactPerson = contact.String
		c.Phone = phone.String
		c.Address = address.String
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
