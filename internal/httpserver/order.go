package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/internal/util"
	"github.com/solarspark/store/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "validation", "fields", len(errs))
		return respondError(c, http.StatusBadRequest, "invalid request data", errs)
	}

	order, err := h.Svc.Checkout(ctx, req)
	if err != nil {
		// Checkout reports missing products as 400, not 404: the
		// order body referenced them, the URL did not.
		if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrInsufficientStock) {
			l.Warn("create_order_failed", "status", 400, "error", err)
			return respondError(c, http.StatusBadRequest, messageOf(err), nil)
		}
		l.Error("create_order_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to create order", nil)
	}

	return respondOK(c, http.StatusCreated, transport.CheckoutResponse{
		ID:      order.ID,
		Total:   order.Total,
		Status:  string(order.Status),
		Message: "Order placed successfully",
	}, "Order created successfully")
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_order_failed", "status", 400, "reason", "bad id", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid order id", nil)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_order_failed", "status", 404, "order_id", id)
			return respondError(c, http.StatusNotFound, "order not found", nil)
		}
		l.Error("get_order_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch order", nil)
	}

	return respondOK(c, http.StatusOK, transport.OrderFromModel(order), "")
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, repo.OrderFilter{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch orders", nil)
	}

	payload := transport.NewListPayload(transport.OrdersFromModels(orders), total, max(page, 1), limit)
	return respondOK(c, http.StatusOK, payload, "")
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_order_failed", "status", 400, "reason", "bad id", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid order id", nil)
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("update_order_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "invalid update data", errs)
	}

	order, err := h.Svc.UpdateOrder(ctx, id, req)
	if err != nil {
		l.Warn("update_order_failed", "order_id", id, "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, transport.OrderFromModel(order), "Order updated successfully")
}
