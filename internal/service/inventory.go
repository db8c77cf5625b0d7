package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

type InventoryService struct {
	Repo *repo.GormRepo
}

// Reserve creates one time-boxed hold per item. The batch is
// all-or-nothing: a single insufficiency rolls every reservation back.
func (s *InventoryService) Reserve(ctx context.Context, req transport.ReserveInventoryRequest) ([]models.InventoryReservation, time.Time, error) {
	l := logging.FromContext(ctx).With("svc", "inventory.reserve")

	expiresAt := time.Now().Add(time.Duration(req.ReservationMinutes) * time.Minute)
	reservations := make([]models.InventoryReservation, 0, len(req.Items))

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		now := time.Now()
		for _, item := range req.Items {
			product, err := tx.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d not found", ErrNotFound, item.ProductID)
				}
				return err
			}

			reserved, err := tx.ActiveReservedQuantity(ctx, product.ID, now)
			if err != nil {
				return err
			}

			available := product.Stock - reserved
			if available < item.Quantity {
				return fmt.Errorf("%w: insufficient stock for %s. Available: %d, Requested: %d",
					ErrInsufficientStock, product.Name, available, item.Quantity)
			}

			reservation := models.InventoryReservation{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				SessionID: req.SessionID,
				ExpiresAt: expiresAt,
				Status:    models.ReservationActive,
			}
			if err := tx.CreateReservation(ctx, &reservation); err != nil {
				return err
			}
			reservations = append(reservations, reservation)
		}
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	l.Info("inventory_reserved", "count", len(reservations), "expires_at", expiresAt)
	return reservations, expiresAt, nil
}

// Confirm flips active, unexpired reservations to confirmed and
// decrements stock by each confirmed quantity. Expired or missing ids
// are skipped without error.
func (s *InventoryService) Confirm(ctx context.Context, reservationIDs []uint, orderID uint) (int, error) {
	l := logging.FromContext(ctx).With("svc", "inventory.confirm")

	confirmed := 0
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		now := time.Now()
		reservations, err := tx.ReservationsByIDs(ctx, reservationIDs)
		if err != nil {
			return err
		}

		for _, reservation := range reservations {
			if reservation.Status != models.ReservationActive || !reservation.ExpiresAt.After(now) {
				continue
			}
			if err := tx.ConfirmReservation(ctx, reservation.ID, orderID); err != nil {
				return err
			}
			if err := tx.AdjustStock(ctx, reservation.ProductID, -reservation.Quantity); err != nil {
				return err
			}
			confirmed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.Info("inventory_confirmed", "order_id", orderID, "confirmed", confirmed)
	return confirmed, nil
}

func (s *InventoryService) Cancel(ctx context.Context, reservationIDs []uint) (int64, error) {
	l := logging.FromContext(ctx).With("svc", "inventory.cancel")

	cancelled, err := s.Repo.CancelActiveReservations(ctx, reservationIDs)
	if err != nil {
		return 0, err
	}

	l.Info("inventory_cancelled", "cancelled", cancelled)
	return cancelled, nil
}

// Cleanup sweeps active reservations past their expiry. Invoked by an
// external scheduler hitting the cleanup endpoint.
func (s *InventoryService) Cleanup(ctx context.Context) (int64, error) {
	l := logging.FromContext(ctx).With("svc", "inventory.cleanup")

	expired, err := s.Repo.ExpireDueReservations(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	l.Info("reservations_expired", "expired", expired)
	return expired, nil
}
