package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/service"
)

var testJWTSecret = []byte("test-jwt-secret")

type testEnv struct {
	e *echo.Echo
	r *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := &repo.GormRepo{DB: db}

	orderSvc := &service.OrderService{
		Repo: r,
		Pricing: service.Pricing{
			TaxRate:      dec("0.075"),
			ShippingCost: dec("25.00"),
		},
	}
	authSvc := &service.AuthService{Repo: r, JWTSecret: testJWTSecret, TokenTTL: time.Hour}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:      &AuthHTTP{Svc: authSvc},
		ProductHandler:   &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		OrderHandler:     &OrderHTTP{Svc: orderSvc},
		InventoryHandler: &InventoryHTTP{Svc: &service.InventoryService{Repo: r}},
		DiscountHandler:  &DiscountHTTP{Svc: &service.DiscountService{Repo: r}},
		AnalyticsHandler: &AnalyticsHTTP{Svc: &service.AnalyticsService{Repo: r}},
		JWTSecret:        testJWTSecret,
	})

	return &testEnv{e: e, r: r}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := decodeEnvelope(t, rec)
	require.Equal(t, true, body["success"], "expected success envelope, got %s", rec.Body.String())
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %s", rec.Body.String())
	return data
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := decodeEnvelope(t, rec)
	require.Equal(t, false, body["success"], "expected error envelope, got %s", rec.Body.String())
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "error is not an object: %s", rec.Body.String())
	return e
}

func (env *testEnv) createProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		Description: "test product",
		Price:       dec(price),
		Stock:       stock,
		Category:    "Solar Panels",
	}
	require.NoError(t, env.r.DB.Create(p).Error)
	return p
}

func (env *testEnv) loginAs(t *testing.T, email, role string) string {
	t.Helper()

	rec := env.do(t, "POST", "/api/auth/register", map[string]any{
		"email":    email,
		"password": "secret123",
		"role":     role,
	}, "")
	require.Equal(t, 201, rec.Code, rec.Body.String())

	rec = env.do(t, "POST", "/api/auth/login", map[string]any{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, 200, rec.Code, rec.Body.String())

	token, ok := dataOf(t, rec)["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}
