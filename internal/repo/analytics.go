package repo

import (
	"context"
	"time"

	"github.com/solarspark/store/internal/models"
)

type EventTypeCount struct {
	EventType string `json:"eventType"`
	Count     int64  `json:"count"`
}

type ProductViewCount struct {
	ProductID uint  `json:"productId"`
	Views     int64 `json:"views"`
}

func (r *GormRepo) CreateAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *GormRepo) EventCountsByType(ctx context.Context, since time.Time) ([]EventTypeCount, error) {
	var counts []EventTypeCount
	err := r.DB.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("event_type").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *GormRepo) UniqueEventUsers(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("created_at >= ? AND user_id IS NOT NULL", since).
		Distinct("user_id").
		Count(&n).Error
	return n, err
}

func (r *GormRepo) UniqueEventSessions(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("created_at >= ? AND session_id <> ''", since).
		Distinct("session_id").
		Count(&n).Error
	return n, err
}

func (r *GormRepo) TopViewedProducts(ctx context.Context, since time.Time, limit int) ([]ProductViewCount, error) {
	var views []ProductViewCount
	err := r.DB.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("product_id, COUNT(id) AS views").
		Where("event_type = ? AND created_at >= ? AND product_id IS NOT NULL", "product_view", since).
		Group("product_id").
		Order("views DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
