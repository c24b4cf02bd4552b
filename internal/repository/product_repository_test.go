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

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "company_id", "name", "brand", "description", "material_type",
		"weight", "recyclable", "recycling_instructions", "image_url", "created_at", "updated_at",
	})
}

func TestProductRepo_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM products WHERE id=").
		WithArgs(uint64(3)).
		WillReturnRows(productRows().
			AddRow(3, 1, "Water Bottle 500ml", "AquaPure", nil, "PET", 18.5, true, "rinse and crush", nil, now, now))

	p, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Water Bottle 500ml", p.Name)
	assert.Equal(t, "PET", p.MaterialType)
	assert.Equal(t, 18.5, p.WeightGrams)
	assert.True(t, p.Recyclable)
	assert.Empty(t, p.Description)
}

func TestProductRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id=").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepo_ListAppliesBothFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM products WHERE material_type=. AND company_id=").
		WithArgs("PET", uint64(1)).
		WillReturnRows(productRows().
			AddRow(3, 1, "Water Bottle 500ml", nil, nil, "PET", 18.5, true, nil, nil, now, now))

	products, err := repo.List(context.Background(), "PET", 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, uint64(3), products[0].ID)
}

func TestProductRepo_ListUnfiltered(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepo(db)

	mock.ExpectQuery("SELECT .+ FROM products ORDER BY id").
		WillReturnRows(productRows())

	products, err := repo.List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestProductCodeRepo_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductCodeRepo(db)

	mock.ExpectExec("INSERT INTO product_codes").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry for key 'product_codes.uuid_code'"))

	_, err := repo.Create(context.Background(), model.ProductCode{ProductID: 3, Code: "abc"})
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestProductCodeRepo_DeactivateOnlyActiveCodes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductCodeRepo(db)

	mock.ExpectExec("UPDATE product_codes SET is_active=0").
		WithArgs("used-code").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), "used-code")
	assert.ErrorIs(t, err, ErrNotFound)
}
