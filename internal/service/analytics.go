package service

import (
	"context"
	"time"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

// EventPublisher pushes telemetry to the event stream. Publishing is
// best-effort: a broker outage must not fail the request.
type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, event any) error
}

type AnalyticsService struct {
	Repo      *repo.GormRepo
	Publisher EventPublisher
}

type AnalyticsSummary struct {
	EventCounts    []repo.EventTypeCount   `json:"eventCounts"`
	UniqueUsers    int64                   `json:"uniqueUsers"`
	UniqueSessions int64                   `json:"uniqueSessions"`
	TopProducts    []repo.ProductViewCount `json:"topProducts"`
}

func (s *AnalyticsService) Track(ctx context.Context, req transport.TrackEventRequest, userAgent, ipAddress string) (*models.AnalyticsEvent, error) {
	l := logging.FromContext(ctx).With("svc", "analytics.track")

	event := &models.AnalyticsEvent{
		EventType: req.EventType,
		UserID:    req.UserID,
		SessionID: req.SessionID,
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Metadata:  req.Metadata,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if err := s.Repo.CreateAnalyticsEvent(ctx, event); err != nil {
		return nil, err
	}

	if s.Publisher != nil {
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Publisher.PublishEvent(pubCtx, req.EventType, event); err != nil {
			l.Error("event_publish_failed", "event_type", req.EventType, "error", err)
		}
	}

	l.Info("event_tracked", "event_type", req.EventType, "event_id", event.ID)
	return event, nil
}

func (s *AnalyticsService) Summary(ctx context.Context, days int) (*AnalyticsSummary, error) {
	since := time.Now().AddDate(0, 0, -days)

	counts, err := s.Repo.EventCountsByType(ctx, since)
	if err != nil {
		return nil, err
	}
	users, err := s.Repo.UniqueEventUsers(ctx, since)
	if err != nil {
		return nil, err
	}
	sessions, err := s.Repo.UniqueEventSessions(ctx, since)
	if err != nil {
		return nil, err
	}
	top, err := s.Repo.TopViewedProducts(ctx, since, 10)
	if err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		EventCounts:    counts,
		UniqueUsers:    users,
		UniqueSessions: sessions,
		TopProducts:    top,
	}, nil
}
