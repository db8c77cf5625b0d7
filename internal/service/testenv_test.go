package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// In-memory sqlite vanishes per connection, so the pool must stay
	// on a single one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &repo.GormRepo{DB: db}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createProduct(t *testing.T, r *repo.GormRepo, name, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		Description: "test product",
		Price:       dec(price),
		Stock:       stock,
		Category:    "Solar Panels",
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func createReservation(t *testing.T, r *repo.GormRepo, productID uint, qty int, status models.ReservationStatus, expiresAt time.Time) *models.InventoryReservation {
	t.Helper()

	res := &models.InventoryReservation{
		ProductID: productID,
		Quantity:  qty,
		Status:    status,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, r.DB.Create(res).Error)
	return res
}

func productStock(t *testing.T, r *repo.GormRepo, id uint) int {
	t.Helper()

	var p models.Product
	require.NoError(t, r.DB.First(&p, id).Error)
	return p.Stock
}
