package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

// Pricing holds the checkout rates. They come from configuration, not
// package constants.
type Pricing struct {
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
}

type OrderService struct {
	Repo    *repo.GormRepo
	Pricing Pricing
}

// Checkout runs the whole order-creation workflow in one transaction:
// per-item availability check under a row lock, price snapshot, stock
// decrement, totals, order + line-item persistence. Any failure rolls
// everything back.
func (s *OrderService) Checkout(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	var order *models.Order
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		now := time.Now()
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))

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

			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})

			if err := tx.AdjustStock(ctx, product.ID, -item.Quantity); err != nil {
				return err
			}
		}

		subtotal = subtotal.Round(2)
		tax := subtotal.Mul(s.Pricing.TaxRate).Round(2)
		total := subtotal.Add(tax).Add(s.Pricing.ShippingCost).Round(2)

		order = &models.Order{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			ShippingAddress: models.ShippingAddress{
				Street:  req.ShippingAddress.Street,
				City:    req.ShippingAddress.City,
				State:   req.ShippingAddress.State,
				ZipCode: req.ShippingAddress.ZipCode,
				Country: req.ShippingAddress.Country,
			},
			Subtotal:          subtotal,
			Tax:               tax,
			Shipping:          s.Pricing.ShippingCost,
			Total:             total,
			Status:            models.OrderStatusPending,
			PaymentMethod:     models.PaymentMethod(req.PaymentMethod),
			InstallmentMonths: req.InstallmentMonths,
			Notes:             req.Notes,
			Items:             items,
		}
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	l.Info("order_created", "order_id", order.ID, "total", order.Total.StringFixed(2), "items", len(order.Items))
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d not found", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, f repo.OrderFilter) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, f)
}

// UpdateOrder applies a partial update. A status change must follow the
// allowed-transitions table; anything else is a conflict.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, req transport.UpdateOrderRequest) (*models.Order, error) {
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrderForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d not found", ErrNotFound, id)
			}
			return err
		}

		fields := map[string]any{}
		if req.Status != nil {
			next := models.OrderStatus(*req.Status)
			if next != order.Status {
				if !order.Status.CanTransitionTo(next) {
					return fmt.Errorf("%w: cannot transition order from %s to %s", ErrConflict, order.Status, next)
				}
				fields["status"] = next
			}
		}
		if req.TrackingNumber != nil {
			fields["tracking_number"] = *req.TrackingNumber
		}
		if req.Notes != nil {
			fields["notes"] = *req.Notes
		}

		return tx.UpdateOrderFields(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, id)
}
