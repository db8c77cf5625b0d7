package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/transport"
)

func newOrderService(r *repo.GormRepo) *OrderService {
	return &OrderService{
		Repo: r,
		Pricing: Pricing{
			TaxRate:      dec("0.075"),
			ShippingCost: dec("25.00"),
		},
	}
}

func validOrderRequest(items ...transport.OrderItemPayload) transport.CreateOrderRequest {
	return transport.CreateOrderRequest{
		CustomerName:  "Jane Solar",
		CustomerEmail: "jane@example.com",
		ShippingAddress: transport.ShippingAddressPayload{
			Street:  "12 Panel Way",
			City:    "Sunville",
			State:   "CA",
			ZipCode: "90210",
			Country: "USA",
		},
		Items:         items,
		PaymentMethod: string(models.PaymentCreditCard),
	}
}

func TestOrderService_Checkout_ComputesTotalsAndDecrementsStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Solar Panel 400W", "100.00", 10)

	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 3}))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.True(t, order.Subtotal.Equal(dec("300.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.Tax.Equal(dec("22.50")), "tax %s", order.Tax)
	assert.True(t, order.Shipping.Equal(dec("25.00")), "shipping %s", order.Shipping)
	assert.True(t, order.Total.Equal(dec("347.50")), "total %s", order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(dec("100.00")))

	assert.Equal(t, 7, productStock(t, r, product.ID))
}

func TestOrderService_Checkout_SnapshotsUnitPrice(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Inverter 5kW", "899.99", 5)

	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", dec("999.99")).Error)

	fetched, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.True(t, fetched.Items[0].UnitPrice.Equal(dec("899.99")))
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Battery 100Ah", "599.99", 2)

	_, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 3}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Available: 2, Requested: 3")

	assert.Equal(t, 2, productStock(t, r, product.ID))
}

func TestOrderService_Checkout_ActiveReservationsReduceAvailability(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Charge Controller", "89.99", 10)
	createReservation(t, r, product.ID, 8, models.ReservationActive, time.Now().Add(15*time.Minute))

	_, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 5}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 2}))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderService_Checkout_ExpiredReservationsDoNotBlock(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Mounting Kit", "149.99", 5)
	createReservation(t, r, product.ID, 5, models.ReservationActive, time.Now().Add(-time.Minute))

	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 5}))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestOrderService_Checkout_BatchFailureRollsBackEverything(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	first := createProduct(t, r, "Solar Cable", "79.99", 10)
	second := createProduct(t, r, "Water Pump", "45.99", 1)

	_, err := svc.Checkout(ctx, validOrderRequest(
		transport.OrderItemPayload{ProductID: first.ID, Quantity: 4},
		transport.OrderItemPayload{ProductID: second.ID, Quantity: 2},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Equal(t, 10, productStock(t, r, first.ID))
	assert.Equal(t, 1, productStock(t, r, second.ID))

	var orderCount int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestOrderService_Checkout_UnknownProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)

	_, err := svc.Checkout(context.Background(), validOrderRequest(transport.OrderItemPayload{ProductID: 12345, Quantity: 1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)

	_, err := svc.GetOrder(context.Background(), 99999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderService_ListOrders_SearchAndPagination(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Street Light", "199.99", 50)

	for _, name := range []string{"Alice Amp", "Bob Volt", "Alice Watt"} {
		req := validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 1})
		req.CustomerName = name
		_, err := svc.Checkout(ctx, req)
		require.NoError(t, err)
	}

	total, orders, err := svc.ListOrders(ctx, repo.OrderFilter{Search: "alice", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, orders, 2)

	total, orders, err = svc.ListOrders(ctx, repo.OrderFilter{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, orders, 2)
}

func TestOrderService_UpdateOrder_StatusTransitions(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Solar Panel 400W", "299.99", 10)
	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	confirmed := string(models.OrderStatusConfirmed)
	updated, err := svc.UpdateOrder(ctx, order.ID, transport.UpdateOrderRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)

	delivered := string(models.OrderStatusDelivered)
	_, err = svc.UpdateOrder(ctx, order.ID, transport.UpdateOrderRequest{Status: &delivered})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	shipped := string(models.OrderStatusShipped)
	tracking := "TRACK-123"
	updated, err = svc.UpdateOrder(ctx, order.ID, transport.UpdateOrderRequest{Status: &shipped, TrackingNumber: &tracking})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, "TRACK-123", updated.TrackingNumber)
}

func TestOrderService_UpdateOrder_SameStatusIsNoop(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)
	ctx := context.Background()

	product := createProduct(t, r, "Solar Panel 400W", "299.99", 10)
	order, err := svc.Checkout(ctx, validOrderRequest(transport.OrderItemPayload{ProductID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	pending := string(models.OrderStatusPending)
	updated, err := svc.UpdateOrder(ctx, order.ID, transport.UpdateOrderRequest{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)
}

func TestOrderService_UpdateOrder_NotFound(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := newOrderService(r)

	notes := "late delivery"
	_, err := svc.UpdateOrder(context.Background(), 98765, transport.UpdateOrderRequest{Notes: &notes})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
