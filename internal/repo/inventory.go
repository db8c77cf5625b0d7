package repo

import (
	"context"
	"time"

	"github.com/solarspark/store/internal/models"
)

// ActiveReservedQuantity sums quantities held by active, unexpired
// reservations for a product. Available stock for new reservations is
// product.stock minus this sum.
func (r *GormRepo) ActiveReservedQuantity(ctx context.Context, productID uint, now time.Time) (int, error) {
	var reserved int
	err := r.DB.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("product_id = ? AND status = ? AND expires_at > ?", productID, models.ReservationActive, now).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&reserved).Error
	if err != nil {
		return 0, err
	}
	return reserved, nil
}

func (r *GormRepo) CreateReservation(ctx context.Context, reservation *models.InventoryReservation) error {
	return r.DB.WithContext(ctx).Create(reservation).Error
}

func (r *GormRepo) ReservationsByIDs(ctx context.Context, ids []uint) ([]models.InventoryReservation, error) {
	var reservations []models.InventoryReservation
	err := r.forUpdate(r.DB.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *GormRepo) ConfirmReservation(ctx context.Context, id uint, orderID uint) error {
	return r.DB.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   models.ReservationConfirmed,
			"order_id": orderID,
		}).Error
}

// CancelActiveReservations marks active reservations cancelled. Stock is
// untouched: nothing was decremented while they were active.
func (r *GormRepo) CancelActiveReservations(ctx context.Context, ids []uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("id IN ? AND status = ?", ids, models.ReservationActive).
		UpdateColumn("status", models.ReservationCancelled)
	return res.RowsAffected, res.Error
}

// ExpireDueReservations sweeps active reservations whose expiry has
// passed.
func (r *GormRepo) ExpireDueReservations(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.InventoryReservation{}).
		Where("status = ? AND expires_at < ?", models.ReservationActive, now).
		UpdateColumn("status", models.ReservationExpired)
	return res.RowsAffected, res.Error
}
