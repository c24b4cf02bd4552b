package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reklik/reklik-server/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "phone", "created_at", "updated_at"})
}

func TestUserRepo_CreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(7, 1))

	u, err := repo.Create(context.Background(), model.User{
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  model.RoleCitizen,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ana@example.com' for key 'users.email'"))

	_, err := repo.Create(context.Background(), model.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM users WHERE email=").
		WithArgs("ana@example.com").
		WillReturnRows(userRows().AddRow(7, "Ana", "ana@example.com", "$2a$12$hash", model.RoleCitizen, nil, now, now))

	u, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.Empty(t, u.Phone)
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE email=").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_ListFiltersByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM users WHERE role=").
		WithArgs(model.RoleRecycler).
		WillReturnRows(userRows().
			AddRow(1, "R One", "r1@example.com", "h", model.RoleRecycler, "555-0100", now, now).
			AddRow(2, "R Two", "r2@example.com", "h", model.RoleRecycler, nil, now, now))

	users, err := repo.List(context.Background(), model.RoleRecycler)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "555-0100", users[0].Phone)
	assert.Empty(t, users[1].Phone)
}

func TestUserRepo_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), model.User{ID: 404, Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_UpdateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	err := repo.Update(context.Background(), model.User{ID: 7, Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("DELETE FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 7))

	mock.ExpectExec("DELETE FROM users WHERE id=").
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrNotFound)
}
