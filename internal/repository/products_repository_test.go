package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockProductsRepository(t *testing.T) (sqlmock.Sqlmock, *ProductsRepository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open gorm over sqlmock")

	return mock, NewProductsRepository(gdb, nil)
}

func TestProductsRepository_DeleteVariantRemovesRow(t *testing.T) {
	mock, repo := newMockProductsRepository(t)

	variantID := uuid.New()
	productID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "product_id", "name", "value", "price_ghs", "stock"}).
		AddRow(variantID.String(), productID.String(), "Color", "Black", 40.0, 5)
	mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id =`).WillReturnRows(rows)

	// The row must be deleted outright, never stamped with deleted_at: a
	// lingering soft-deleted row would keep holding the unique
	// (product_id, name, value) slot and re-saving the combination would
	// conflict forever.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "product_variants"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteVariant(variantID))
	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestProductsRepository_DeleteVariantMissing(t *testing.T) {
	mock, repo := newMockProductsRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "product_variants" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.DeleteVariant(uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
