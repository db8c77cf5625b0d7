package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/solarspark/store/internal/middleware/auth"
)

type Deps struct {
	AuthHandler      *AuthHTTP
	ProductHandler   *ProductHTTP
	OrderHandler     *OrderHTTP
	InventoryHandler *InventoryHTTP
	DiscountHandler  *DiscountHTTP
	AnalyticsHandler *AnalyticsHTTP
	JWTSecret        []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := &authmw.Middleware{JWTSecret: d.JWTSecret}

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, authMW.RequireLogin)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/categories", d.ProductHandler.Categories)
	products.GET("/:id", d.ProductHandler.GetProduct)

	productAdmin := products.Group("", authMW.RequireAdmin)
	productAdmin.POST("", d.ProductHandler.CreateProduct)
	productAdmin.PATCH("/:id", d.ProductHandler.PatchProduct)
	productAdmin.DELETE("/:id", d.ProductHandler.DeleteProduct)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PUT("/:id", d.OrderHandler.UpdateOrder)

	inventory := api.Group("/inventory")
	inventory.POST("/reserve", d.InventoryHandler.Reserve)
	inventory.POST("/confirm", d.InventoryHandler.Confirm)
	inventory.POST("/cancel", d.InventoryHandler.Cancel)
	inventory.POST("/cleanup", d.InventoryHandler.Cleanup)

	discounts := api.Group("/discount-codes")
	discounts.POST("/validate", d.DiscountHandler.Validate)
	discounts.POST("/redeem", d.DiscountHandler.Redeem)

	discountAdmin := discounts.Group("", authMW.RequireAdmin)
	discountAdmin.POST("", d.DiscountHandler.Create)
	discountAdmin.GET("", d.DiscountHandler.List)

	analytics := api.Group("/analytics")
	analytics.POST("/track", d.AnalyticsHandler.Track)
	analytics.GET("/summary", d.AnalyticsHandler.Summary, authMW.RequireAdmin)
}
