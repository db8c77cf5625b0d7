package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/internal/util"
	"github.com/solarspark/store/pkg/logging"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) Track(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.track")

	var req transport.TrackEventRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("track_event_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("track_event_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	event, err := h.Svc.Track(ctx, req, c.Request().UserAgent(), c.RealIP())
	if err != nil {
		l.Error("track_event_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to track event", nil)
	}

	return respondOK(c, http.StatusOK, map[string]any{"eventId": event.ID}, "")
}

func (h *AnalyticsHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.summary")

	days := util.ParseIntDefault(c.QueryParam("days"), 30)
	if days < 1 || days > 365 {
		l.Warn("analytics_summary_failed", "status", 400, "reason", "days out of range")
		return respondError(c, http.StatusBadRequest, "days must be between 1 and 365", nil)
	}

	summary, err := h.Svc.Summary(ctx, days)
	if err != nil {
		l.Error("analytics_summary_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to build analytics summary", nil)
	}

	return respondOK(c, http.StatusOK, summary, "")
}
