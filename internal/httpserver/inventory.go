package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

type InventoryHTTP struct {
	Svc *service.InventoryService
}

func (h *InventoryHTTP) Reserve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.reserve")

	var req transport.ReserveInventoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("reserve_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.ReservationMinutes == 0 {
		req.ReservationMinutes = 15
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("reserve_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	reservations, expiresAt, err := h.Svc.Reserve(ctx, req)
	if err != nil {
		l.Warn("reserve_failed", "error", err)
		return respondDomainError(c, err)
	}

	resp := transport.ReserveInventoryResponse{ExpiresAt: expiresAt}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, transport.ReservationResponse{
			ID:        r.ID,
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			ExpiresAt: r.ExpiresAt,
		})
	}
	return respondOK(c, http.StatusOK, resp, "")
}

func (h *InventoryHTTP) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.confirm")

	var req transport.ConfirmReservationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("confirm_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("confirm_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	confirmed, err := h.Svc.Confirm(ctx, req.ReservationIDs, req.OrderID)
	if err != nil {
		l.Error("confirm_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to confirm reservations", nil)
	}

	return respondOK(c, http.StatusOK, map[string]any{"confirmed": confirmed}, "Inventory reservation confirmed")
}

func (h *InventoryHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.cancel")

	var req transport.CancelReservationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("cancel_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("cancel_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	cancelled, err := h.Svc.Cancel(ctx, req.ReservationIDs)
	if err != nil {
		l.Error("cancel_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to cancel reservations", nil)
	}

	return respondOK(c, http.StatusOK, map[string]any{"cancelled": cancelled}, "Inventory reservation cancelled")
}

func (h *InventoryHTTP) Cleanup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "inventory.cleanup")

	expired, err := h.Svc.Cleanup(ctx)
	if err != nil {
		l.Error("cleanup_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to clean up reservations", nil)
	}

	return respondOK(c, http.StatusOK, map[string]any{"expired": expired},
		fmt.Sprintf("Cleaned up %d expired reservations", expired))
}
