package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/solarspark/store/internal/models"
)

func (r *GormRepo) GetDiscountCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var dc models.DiscountCode
	err := r.DB.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *GormRepo) CreateDiscountCode(ctx context.Context, dc *models.DiscountCode) error {
	return r.DB.WithContext(ctx).Create(dc).Error
}

func (r *GormRepo) ListDiscountCodes(ctx context.Context, offset, limit int) (int64, []models.DiscountCode, error) {
	q := r.DB.WithContext(ctx).Model(&models.DiscountCode{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	codes := make([]models.DiscountCode, 0, limit)
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return 0, nil, err
	}
	return total, codes, nil
}

// IncrementDiscountUsage bumps used_count in a single guarded UPDATE so
// concurrent redemptions cannot blow past the usage limit. Returns
// false when the code is inactive, exhausted, or outside its window.
func (r *GormRepo) IncrementDiscountUsage(ctx context.Context, code string, now time.Time) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.DiscountCode{}).
		Where("code = ? AND is_active = ?", strings.ToUpper(code), true).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		Where("valid_from <= ? AND valid_until >= ?", now, now).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
