package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
)

type OrderFilter struct {
	Search    string
	SortBy    string
	SortOrder string
	Offset    int
	Limit     int
}

var orderSortColumns = map[string]string{
	"createdAt":     "created_at",
	"total":         "total",
	"status":        "status",
	"customerName":  "customer_name",
	"customerEmail": "customer_email",
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderForUpdate(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.forUpdate(r.DB.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("LOWER(customer_name) LIKE LOWER(?) OR LOWER(customer_email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	column, ok := orderSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	orders := make([]models.Order, 0, f.Limit)
	err := q.Order(column + " " + direction).
		Offset(f.Offset).
		Limit(f.Limit).
		Preload("Items").
		Preload("Items.Product").
		Find(&orders).Error
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// UpdateOrderFields applies only the provided columns. Absent keys are
// left untouched rather than overwritten.
func (r *GormRepo) UpdateOrderFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
