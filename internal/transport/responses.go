package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solarspark/store/internal/models"
)

type ListPayload struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
}

func NewListPayload(items any, total int64, page, pageSize int) ListPayload {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	return ListPayload{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ProductSummary is the trimmed projection nested under order items.
type ProductSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type OrderItemResponse struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Product   *ProductSummary `json:"product,omitempty"`
}

type OrderResponse struct {
	ID                uint                   `json:"id"`
	CustomerName      string                 `json:"customerName"`
	CustomerEmail     string                 `json:"customerEmail"`
	CustomerPhone     string                 `json:"customerPhone,omitempty"`
	ShippingAddress   models.ShippingAddress `json:"shippingAddress"`
	Subtotal          decimal.Decimal        `json:"subtotal"`
	Tax               decimal.Decimal        `json:"tax"`
	Shipping          decimal.Decimal        `json:"shipping"`
	Total             decimal.Decimal        `json:"total"`
	Status            models.OrderStatus     `json:"status"`
	PaymentMethod     models.PaymentMethod   `json:"paymentMethod"`
	InstallmentMonths *int                   `json:"installmentMonths,omitempty"`
	TrackingNumber    string                 `json:"trackingNumber,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	Items             []OrderItemResponse    `json:"items"`
	CreatedAt         time.Time              `json:"createdAt"`
}

func OrderFromModel(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		resp := OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if item.Product != nil {
			resp.Product = &ProductSummary{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				ImageURL: item.Product.ImageURL,
			}
		}
		items = append(items, resp)
	}

	return OrderResponse{
		ID:                o.ID,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		CustomerPhone:     o.CustomerPhone,
		ShippingAddress:   o.ShippingAddress,
		Subtotal:          o.Subtotal,
		Tax:               o.Tax,
		Shipping:          o.Shipping,
		Total:             o.Total,
		Status:            o.Status,
		PaymentMethod:     o.PaymentMethod,
		InstallmentMonths: o.InstallmentMonths,
		TrackingNumber:    o.TrackingNumber,
		Notes:             o.Notes,
		Items:             items,
		CreatedAt:         o.CreatedAt,
	}
}

func OrdersFromModels(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, OrderFromModel(&orders[i]))
	}
	return out
}

type CheckoutResponse struct {
	ID      uint            `json:"id"`
	Total   decimal.Decimal `json:"total"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
}

type ReservationResponse struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"productId"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ReserveInventoryResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	ExpiresAt    time.Time             `json:"expiresAt"`
}

type DiscountValidationResponse struct {
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
