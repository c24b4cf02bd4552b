package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reklik/reklik-server/internal/model"
)

// UserRepo persists user accounts. Password hashing happens in the auth
// layer; this repo stores whatever hash it is handed.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,role,phone,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var phone sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.Phone = phone.String
	return u, nil
}

// Create inserts a user and returns it with the assigned ID. A unique-key
// violation on email maps to ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, phone, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		u.Name, u.Email, u.PasswordHash, u.Role, nullable(u.Phone), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	u.ID = uint64(id)
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns all users, optionally filtered by role when role is
// non-empty.
func (r *UserRepo) List(ctx context.Context, role string) ([]model.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY id"
	args := []any{}
	if role != "" {
		query = "SELECT " + userColumns + " FROM users WHERE role=? ORDER BY id"
		args = append(args, role)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var phone sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.Phone = phone.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update rewrites a user's mutable fields and refreshes updated_at. A
// conflicting email maps to ErrDuplicateEmail.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, role=?, phone=?, updated_at=? WHERE id=?",
		u.Name, u.Email, u.Role, nullable(u.Phone), u.UpdatedAt, u.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateEmail
		}
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

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
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

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
