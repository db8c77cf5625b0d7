package transport

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solarspark/store/internal/models"
)

// FieldErrors collects per-field validation failures for the 400
// response details.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

type OrderItemPayload struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type ShippingAddressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type CreateOrderRequest struct {
	CustomerName      string                 `json:"customerName"`
	CustomerEmail     string                 `json:"customerEmail"`
	CustomerPhone     string                 `json:"customerPhone"`
	ShippingAddress   ShippingAddressPayload `json:"shippingAddress"`
	Items             []OrderItemPayload     `json:"items"`
	PaymentMethod     string                 `json:"paymentMethod"`
	InstallmentMonths *int                   `json:"installmentMonths"`
	Notes             string                 `json:"notes"`
}

func (r *CreateOrderRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.CustomerName == "" {
		errs.add("customerName", "customer name is required")
	} else if len(r.CustomerName) > 255 {
		errs.add("customerName", "customer name must be less than 255 characters")
	}
	if !validEmail(r.CustomerEmail) {
		errs.add("customerEmail", "invalid email address")
	}
	if len(r.CustomerPhone) > 20 {
		errs.add("customerPhone", "phone number must be less than 20 characters")
	}

	addr := map[string]string{
		"shippingAddress.street":  r.ShippingAddress.Street,
		"shippingAddress.city":    r.ShippingAddress.City,
		"shippingAddress.state":   r.ShippingAddress.State,
		"shippingAddress.zipCode": r.ShippingAddress.ZipCode,
		"shippingAddress.country": r.ShippingAddress.Country,
	}
	for field, value := range addr {
		if value == "" {
			errs.add(field, "required")
		}
	}

	if len(r.Items) == 0 {
		errs.add("items", "at least one item is required")
	}
	if len(r.Items) > 50 {
		errs.add("items", "cannot order more than 50 different products")
	}
	for i, item := range r.Items {
		if item.ProductID == 0 {
			errs.add(fmt.Sprintf("items[%d].productId", i), "product id must be positive")
		}
		if item.Quantity < 1 {
			errs.add(fmt.Sprintf("items[%d].quantity", i), "quantity must be positive")
		}
		if item.Quantity > 1000 {
			errs.add(fmt.Sprintf("items[%d].quantity", i), "quantity cannot exceed 1000")
		}
	}

	if !models.PaymentMethod(r.PaymentMethod).Valid() {
		errs.add("paymentMethod", "must be one of credit_card, installment_loan, bank_transfer")
	}
	if r.InstallmentMonths != nil && *r.InstallmentMonths < 1 {
		errs.add("installmentMonths", "must be positive")
	}
	if len(r.Notes) > 1000 {
		errs.add("notes", "notes must be less than 1000 characters")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	Notes          *string `json:"notes"`
}

func (r *UpdateOrderRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Status != nil && !models.OrderStatus(*r.Status).Valid() {
		errs.add("status", "must be one of pending, confirmed, shipped, delivered, cancelled")
	}
	if r.TrackingNumber != nil && len(*r.TrackingNumber) > 100 {
		errs.add("trackingNumber", "tracking number must be less than 100 characters")
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.add("notes", "notes must be less than 1000 characters")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ReserveInventoryRequest struct {
	Items              []OrderItemPayload `json:"items"`
	SessionID          string             `json:"sessionId"`
	ReservationMinutes int                `json:"reservationMinutes"`
}

func (r *ReserveInventoryRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.Items) == 0 {
		errs.add("items", "at least one item is required")
	}
	if len(r.Items) > 50 {
		errs.add("items", "cannot reserve more than 50 different products")
	}
	for i, item := range r.Items {
		if item.ProductID == 0 {
			errs.add(fmt.Sprintf("items[%d].productId", i), "product id must be positive")
		}
		if item.Quantity < 1 {
			errs.add(fmt.Sprintf("items[%d].quantity", i), "quantity must be positive")
		}
		if item.Quantity > 1000 {
			errs.add(fmt.Sprintf("items[%d].quantity", i), "quantity cannot exceed 1000")
		}
	}
	if len(r.SessionID) > 255 {
		errs.add("sessionId", "session id must be less than 255 characters")
	}
	if r.ReservationMinutes < 1 || r.ReservationMinutes > 1440 {
		errs.add("reservationMinutes", "must be between 1 and 1440")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ConfirmReservationRequest struct {
	ReservationIDs []uint `json:"reservationIds"`
	OrderID        uint   `json:"orderId"`
}

func (r *ConfirmReservationRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.ReservationIDs) == 0 {
		errs.add("reservationIds", "at least one reservation id is required")
	}
	if len(r.ReservationIDs) > 100 {
		errs.add("reservationIds", "cannot confirm more than 100 reservations at once")
	}
	if r.OrderID == 0 {
		errs.add("orderId", "order id must be positive")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CancelReservationRequest struct {
	ReservationIDs []uint `json:"reservationIds"`
}

func (r *CancelReservationRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.ReservationIDs) == 0 {
		errs.add("reservationIds", "at least one reservation id is required")
	}
	if len(r.ReservationIDs) > 100 {
		errs.add("reservationIds", "cannot cancel more than 100 reservations at once")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CreateDiscountCodeRequest struct {
	Code              string           `json:"code"`
	Description       string           `json:"description"`
	Type              string           `json:"type"`
	Value             decimal.Decimal  `json:"value"`
	MinOrderAmount    *decimal.Decimal `json:"minOrderAmount"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount"`
	UsageLimit        *int             `json:"usageLimit"`
	ValidFrom         *string          `json:"validFrom"`
	ValidUntil        string           `json:"validUntil"`
}

func (r *CreateDiscountCodeRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.Code) < 3 || len(r.Code) > 20 {
		errs.add("code", "code must be between 3 and 20 characters")
	}
	if r.Description == "" {
		errs.add("description", "description is required")
	}
	if !models.DiscountType(r.Type).Valid() {
		errs.add("type", "must be percentage or fixed")
	}
	if r.Value.IsNegative() {
		errs.add("value", "value must be non-negative")
	}
	if r.Type == string(models.DiscountPercentage) && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		errs.add("value", "percentage cannot exceed 100")
	}
	if r.UsageLimit != nil && *r.UsageLimit < 1 {
		errs.add("usageLimit", "must be positive")
	}
	if r.ValidUntil == "" {
		errs.add("validUntil", "valid-until date is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type ValidateDiscountCodeRequest struct {
	Code        string          `json:"code"`
	OrderAmount decimal.Decimal `json:"orderAmount"`
}

func (r *ValidateDiscountCodeRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Code == "" {
		errs.add("code", "code is required")
	}
	if r.OrderAmount.IsNegative() {
		errs.add("orderAmount", "order amount must be non-negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type RedeemDiscountCodeRequest struct {
	Code string `json:"code"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if !validEmail(r.Email) {
		errs.add("email", "invalid email address")
	}
	if len(r.Password) < 6 {
		errs.add("password", "password must be at least 6 characters")
	}
	if r.Role != "" && r.Role != models.RoleAdmin && r.Role != models.RoleCustomer {
		errs.add("role", "must be admin or customer")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TrackEventRequest struct {
	EventType string         `json:"eventType"`
	UserID    *uint          `json:"userId"`
	SessionID string         `json:"sessionId"`
	ProductID *uint          `json:"productId"`
	OrderID   *uint          `json:"orderId"`
	Metadata  map[string]any `json:"metadata"`
}

func (r *TrackEventRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.EventType == "" {
		errs.add("eventType", "event type is required")
	}
	if len(r.EventType) > 100 {
		errs.add("eventType", "event type must be less than 100 characters")
	}
	if len(r.SessionID) > 255 {
		errs.add("sessionId", "session id must be less than 255 characters")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

func (r *CreateProductRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Name == "" || len(r.Name) > 255 {
		errs.add("name", "name is required and must be less than 255 characters")
	}
	if r.Description == "" {
		errs.add("description", "description is required")
	}
	if r.Price.IsNegative() {
		errs.add("price", "price must be non-negative")
	}
	if r.Stock < 0 {
		errs.add("stock", "stock must be non-negative")
	}
	if r.Category == "" {
		errs.add("category", "category is required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *string          `json:"category"`
	ImageURL    *string          `json:"imageUrl"`
}

func (r *PatchProductRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Name != nil && (*r.Name == "" || len(*r.Name) > 255) {
		errs.add("name", "name must be non-empty and less than 255 characters")
	}
	if r.Price != nil && r.Price.IsNegative() {
		errs.add("price", "price must be non-negative")
	}
	if r.Stock != nil && *r.Stock < 0 {
		errs.add("stock", "stock must be non-negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
