package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/solarspark/store/internal/repo"
	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/internal/util"
	"github.com/solarspark/store/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func parsePriceParam(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("pageSize"), 12)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, repo.ProductFilter{
		Query:     c.QueryParam("q"),
		Category:  c.QueryParam("category"),
		MinPrice:  parsePriceParam(c.QueryParam("minPrice")),
		MaxPrice:  parsePriceParam(c.QueryParam("maxPrice")),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch products", nil)
	}

	return respondOK(c, http.StatusOK, transport.NewListPayload(items, total, max(page, 1), limit), "")
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "bad id", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid product id", nil)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "product_id", id)
			return respondError(c, http.StatusNotFound, "product not found", nil)
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch product", nil)
	}

	return respondOK(c, http.StatusOK, product, "")
}

func (h *ProductHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.categories")

	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to fetch categories", nil)
	}

	return respondOK(c, http.StatusOK, map[string]any{"categories": categories}, "")
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return respondError(c, http.StatusInternalServerError, "failed to create product", nil)
	}

	return respondOK(c, http.StatusCreated, product, "")
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := parseID(c)
	if err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "bad id", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid product id", nil)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	product, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		l.Warn("patch_product_failed", "product_id", id, "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, product, "")
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "bad id", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid product id", nil)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_failed", "product_id", id, "error", err)
		return respondDomainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
