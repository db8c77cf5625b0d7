package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/internal/transport"
)

type capturingPublisher struct {
	keys []string
	err  error
}

func (p *capturingPublisher) PublishEvent(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return p.err
}

func uintPtr(n uint) *uint {
	return &n
}

func TestAnalyticsService_Track_PersistsAndPublishes(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	pub := &capturingPublisher{}
	svc := &AnalyticsService{Repo: r, Publisher: pub}

	event, err := svc.Track(context.Background(), transport.TrackEventRequest{
		EventType: "product_view",
		SessionID: "sess-1",
		ProductID: uintPtr(3),
		Metadata:  map[string]any{"source": "homepage"},
	}, "test-agent", "203.0.113.7")
	require.NoError(t, err)
	require.NotZero(t, event.ID)

	assert.Equal(t, "test-agent", event.UserAgent)
	assert.Equal(t, "203.0.113.7", event.IPAddress)
	assert.Equal(t, []string{"product_view"}, pub.keys)

	var stored models.AnalyticsEvent
	require.NoError(t, r.DB.First(&stored, event.ID).Error)
	assert.Equal(t, "product_view", stored.EventType)
	assert.Equal(t, "homepage", stored.Metadata["source"])
}

func TestAnalyticsService_Track_PublisherFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	pub := &capturingPublisher{err: errors.New("broker down")}
	svc := &AnalyticsService{Repo: r, Publisher: pub}

	event, err := svc.Track(context.Background(), transport.TrackEventRequest{
		EventType: "page_view",
		SessionID: "sess-1",
	}, "", "")
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
}

func TestAnalyticsService_Track_NilPublisher(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AnalyticsService{Repo: r}

	event, err := svc.Track(context.Background(), transport.TrackEventRequest{
		EventType: "page_view",
	}, "", "")
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
}

func TestAnalyticsService_Summary(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AnalyticsService{Repo: r}
	ctx := context.Background()

	track := func(eventType string, userID, productID *uint, sessionID string) {
		t.Helper()
		_, err := svc.Track(ctx, transport.TrackEventRequest{
			EventType: eventType,
			UserID:    userID,
			ProductID: productID,
			SessionID: sessionID,
		}, "", "")
		require.NoError(t, err)
	}

	track("page_view", uintPtr(1), nil, "sess-a")
	track("page_view", uintPtr(2), nil, "sess-b")
	track("product_view", uintPtr(1), uintPtr(10), "sess-a")
	track("product_view", uintPtr(2), uintPtr(10), "sess-b")
	track("product_view", uintPtr(2), uintPtr(20), "sess-b")

	summary, err := svc.Summary(ctx, 7)
	require.NoError(t, err)

	counts := map[string]int64{}
	for _, c := range summary.EventCounts {
		counts[c.EventType] = c.Count
	}
	assert.EqualValues(t, 2, counts["page_view"])
	assert.EqualValues(t, 3, counts["product_view"])

	assert.EqualValues(t, 2, summary.UniqueUsers)
	assert.EqualValues(t, 2, summary.UniqueSessions)

	require.NotEmpty(t, summary.TopProducts)
	assert.EqualValues(t, 10, summary.TopProducts[0].ProductID)
	assert.EqualValues(t, 2, summary.TopProducts[0].Views)
}
