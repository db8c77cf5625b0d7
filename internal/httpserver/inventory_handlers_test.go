package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarspark/store/internal/models"
)

func TestReserveConfirmRoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	product := env.createProduct(t, "Solar Panel 400W", "299.99", 10)

	rec := env.do(t, http.MethodPost, "/api/inventory/reserve", map[string]any{
		"items":     []map[string]any{{"productId": product.ID, "quantity": 4}},
		"sessionId": "sess-1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := dataOf(t, rec)
	reservations := data["reservations"].([]any)
	require.Len(t, reservations, 1)
	reservationID := reservations[0].(map[string]any)["id"].(float64)

	// Default hold is fifteen minutes.
	expiresAt, err := time.Parse(time.RFC3339, data["expiresAt"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 10*time.Second)

	rec = env.do(t, http.MethodPost, "/api/inventory/confirm", map[string]any{
		"reservationIds": []float64{reservationID},
		"orderId":        42,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Inventory reservation confirmed", body["message"])
	assert.EqualValues(t, 1, dataOf(t, rec)["confirmed"])

	var stored models.Product
	require.NoError(t, env.r.DB.First(&stored, product.ID).Error)
	assert.Equal(t, 6, stored.Stock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	product := env.createProduct(t, "Battery 100Ah", "599.99", 2)

	rec := env.do(t, http.MethodPost, "/api/inventory/reserve", map[string]any{
		"items": []map[string]any{{"productId": product.ID, "quantity": 3}},
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Contains(t, errorOf(t, rec)["message"], "insufficient stock")
}

func TestReserve_ValidationRejectsBadMinutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	product := env.createProduct(t, "Battery 100Ah", "599.99", 5)

	rec := env.do(t, http.MethodPost, "/api/inventory/reserve", map[string]any{
		"items":              []map[string]any{{"productId": product.ID, "quantity": 1}},
		"reservationMinutes": 2000,
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	details := errorOf(t, rec)["details"].(map[string]any)
	assert.Contains(t, details, "reservationMinutes")
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	product := env.createProduct(t, "Mounting Kit", "149.99", 10)

	res := &models.InventoryReservation{
		ProductID: product.ID,
		Quantity:  2,
		Status:    models.ReservationActive,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, env.r.DB.Create(res).Error)

	rec := env.do(t, http.MethodPost, "/api/inventory/cancel", map[string]any{
		"reservationIds": []uint{res.ID},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, dataOf(t, rec)["cancelled"])
}

func TestCleanupReservations(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	product := env.createProduct(t, "Charge Controller", "89.99", 10)

	expired := &models.InventoryReservation{
		ProductID: product.ID,
		Quantity:  2,
		Status:    models.ReservationActive,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.r.DB.Create(expired).Error)

	rec := env.do(t, http.MethodPost, "/api/inventory/cleanup", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Cleaned up 1 expired reservations", body["message"])
	assert.EqualValues(t, 1, dataOf(t, rec)["expired"])
}
