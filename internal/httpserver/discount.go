package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/internal/util"
	"github.com/solarspark/store/pkg/logging"
)

type DiscountHTTP struct {
	Svc *service.DiscountService
}

func (h *DiscountHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.validate")

	var req transport.ValidateDiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("validate_discount_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("validate_discount_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	dc, discount, err := h.Svc.Validate(ctx, req.Code, req.OrderAmount)
	if err != nil {
		l.Warn("validate_discount_failed", "code", req.Code, "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, transport.DiscountValidationResponse{
		Code:        dc.Code,
		Description: dc.Description,
		Discount:    discount,
		Type:        string(dc.Type),
		Value:       dc.Value,
	}, "")
}

func (h *DiscountHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.create")

	var req transport.CreateDiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_discount_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("create_discount_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	dc, err := h.Svc.Create(ctx, req)
	if err != nil {
		l.Warn("create_discount_failed", "code", req.Code, "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusCreated, dc, "")
}

func (h *DiscountHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("pageSize"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, codes, err := h.Svc.List(ctx, offset, limit)
	if err != nil {
		l.Error("list_discounts_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch discount codes", nil)
	}

	return respondOK(c, http.StatusOK, transport.NewListPayload(codes, total, max(page, 1), limit), "")
}

func (h *DiscountHTTP) Redeem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "discount.redeem")

	var req transport.RedeemDiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("redeem_discount_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.Code == "" {
		l.Warn("redeem_discount_failed", "status", 400, "reason", "code required")
		return respondError(c, http.StatusBadRequest, "code is required", nil)
	}

	dc, err := h.Svc.Redeem(ctx, req.Code)
	if err != nil {
		l.Warn("redeem_discount_failed", "code", req.Code, "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, dc, "Discount code redeemed")
}
