package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"                       json:"id"`
	Name        string          `gorm:"size:255;not null"                json:"name"`
	Description string          `gorm:"type:text;not null"               json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Category    string          `gorm:"size:100;not null;index"          json:"category"`
	ImageURL    string          `gorm:"size:512"                         json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions is the allowed-transitions table. Delivered and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard      PaymentMethod = "credit_card"
	PaymentInstallmentLoan PaymentMethod = "installment_loan"
	PaymentBankTransfer    PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentInstallmentLoan, PaymentBankTransfer:
		return true
	}
	return false
}

type ShippingAddress struct {
	Street  string `gorm:"column:ship_street;size:255;not null"  json:"street"`
	City    string `gorm:"column:ship_city;size:100;not null"    json:"city"`
	State   string `gorm:"column:ship_state;size:100;not null"   json:"state"`
	ZipCode string `gorm:"column:ship_zip_code;size:20;not null" json:"zipCode"`
	Country string `gorm:"column:ship_country;size:100;not null" json:"country"`
}

type Order struct {
	ID                uint            `gorm:"primaryKey"                       json:"id"`
	CustomerName      string          `gorm:"size:255;not null;index"          json:"customerName"`
	CustomerEmail     string          `gorm:"size:255;not null;index"          json:"customerEmail"`
	CustomerPhone     string          `gorm:"size:20"                          json:"customerPhone,omitempty"`
	ShippingAddress   ShippingAddress `gorm:"embedded"                         json:"shippingAddress"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"subtotal"`
	Tax               decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"tax"`
	Shipping          decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"shipping"`
	Total             decimal.Decimal `gorm:"type:numeric(10,2);not null"      json:"total"`
	Status            OrderStatus     `gorm:"size:20;not null;default:pending" json:"status"`
	PaymentMethod     PaymentMethod   `gorm:"size:30;not null"                 json:"paymentMethod"`
	InstallmentMonths *int            `json:"installmentMonths,omitempty"`
	TrackingNumber    string          `gorm:"size:100"                         json:"trackingNumber,omitempty"`
	Notes             string          `gorm:"size:1000"                        json:"notes,omitempty"`
	Items             []OrderItem     `gorm:"constraint:OnDelete:CASCADE"      json:"items,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// UnitPrice is the price snapshot taken at order creation. It is never
// re-read from the product row afterwards.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                        json:"id"`
	OrderID   uint            `gorm:"index;not null"                    json:"orderId"`
	ProductID uint            `gorm:"index;not null"                    json:"productId"`
	Quantity  int             `gorm:"not null;check:quantity > 0"       json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"       json:"unitPrice"`
	Product   *Product        `gorm:"foreignKey:ProductID"              json:"product,omitempty"`
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationExpired   ReservationStatus = "expired"
	ReservationCancelled ReservationStatus = "cancelled"
)

type InventoryReservation struct {
	ID        uint              `gorm:"primaryKey"                      json:"id"`
	ProductID uint              `gorm:"index;not null"                  json:"productId"`
	Quantity  int               `gorm:"not null;check:quantity > 0"     json:"quantity"`
	OrderID   *uint             `gorm:"index"                           json:"orderId,omitempty"`
	SessionID string            `gorm:"size:255;index"                  json:"sessionId,omitempty"`
	ExpiresAt time.Time         `gorm:"not null;index"                  json:"expiresAt"`
	Status    ReservationStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type DiscountCode struct {
	ID                uint             `gorm:"primaryKey"                  json:"id"`
	Code              string           `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description       string           `gorm:"type:text;not null"          json:"description"`
	Type              DiscountType     `gorm:"size:20;not null"            json:"type"`
	Value             decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"value"`
	MinOrderAmount    *decimal.Decimal `gorm:"type:numeric(10,2)"          json:"minOrderAmount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `gorm:"type:numeric(10,2)"          json:"maxDiscountAmount,omitempty"`
	UsageLimit        *int             `json:"usageLimit,omitempty"`
	UsedCount         int              `gorm:"not null;default:0"          json:"usedCount"`
	IsActive          bool             `gorm:"not null;default:true"       json:"isActive"`
	ValidFrom         time.Time        `gorm:"not null"                    json:"validFrom"`
	ValidUntil        time.Time        `gorm:"not null"                    json:"validUntil"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// CalculateDiscount evaluates the code against an order amount without
// mutating any state. The discount never exceeds the order amount.
func (d *DiscountCode) CalculateDiscount(orderAmount decimal.Decimal) decimal.Decimal {
	return d.CalculateDiscountAt(time.Now(), orderAmount)
}

func (d *DiscountCode) CalculateDiscountAt(now time.Time, orderAmount decimal.Decimal) decimal.Decimal {
	if !d.IsActive {
		return decimal.Zero
	}
	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return decimal.Zero
	}
	if now.Before(d.ValidFrom) || now.After(d.ValidUntil) {
		return decimal.Zero
	}
	if d.MinOrderAmount != nil && orderAmount.LessThan(*d.MinOrderAmount) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	if d.Type == DiscountPercentage {
		discount = orderAmount.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	} else {
		discount = d.Value
	}

	if d.MaxDiscountAmount != nil && discount.GreaterThan(*d.MaxDiscountAmount) {
		discount = *d.MaxDiscountAmount
	}
	if discount.GreaterThan(orderAmount) {
		discount = orderAmount
	}
	return discount
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           uint      `gorm:"primaryKey"                      json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"size:255;not null"               json:"-"`
	Role         string    `gorm:"size:20;not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AnalyticsEvent is append-only telemetry. Rows are written once and
// never updated.
type AnalyticsEvent struct {
	ID        uint           `gorm:"primaryKey"              json:"id"`
	EventType string         `gorm:"size:100;not null;index" json:"eventType"`
	UserID    *uint          `gorm:"index"                   json:"userId,omitempty"`
	SessionID string         `gorm:"size:255;index"          json:"sessionId,omitempty"`
	ProductID *uint          `gorm:"index"                   json:"productId,omitempty"`
	OrderID   *uint          `gorm:"index"                   json:"orderId,omitempty"`
	Metadata  map[string]any `gorm:"serializer:json"         json:"metadata,omitempty"`
	UserAgent string         `gorm:"size:512"                json:"userAgent,omitempty"`
	IPAddress string         `gorm:"size:64"                 json:"ipAddress,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&Product{},
		&Order{},
		&OrderItem{},
		&InventoryReservation{},
		&DiscountCode{},
		&User{},
		&AnalyticsEvent{},
	}
}
