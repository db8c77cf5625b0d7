package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/service"
	"github.com/solarspark/store/internal/transport"
	"github.com/solarspark/store/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}

	if errs := req.Validate(); errs != nil {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return respondError(c, http.StatusBadRequest, "validation failed", errs)
	}

	user, err := h.Svc.Register(ctx, req.Email, req.Password, req.Role)
	if err != nil {
		l.Warn("register_failed", "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusCreated, map[string]any{
		"user": transport.UserResponse{ID: user.ID, Email: user.Email, Role: user.Role},
	}, "")
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return respondError(c, http.StatusBadRequest, "invalid request body", nil)
	}
	if req.Email == "" || req.Password == "" {
		l.Warn("login_failed", "status", 400, "reason", "missing credentials")
		return respondError(c, http.StatusBadRequest, "email and password are required", nil)
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return respondDomainError(c, err)
	}

	return respondOK(c, http.StatusOK, transport.LoginResponse{
		Token: token,
		User:  transport.UserResponse{ID: user.ID, Email: user.Email, Role: user.Role},
	}, "")
}

func (h *AuthHTTP) Me(c echo.Context) error {
	return respondOK(c, http.StatusOK, map[string]any{
		"user": map[string]any{
			"id":    c.Get("user_id"),
			"email": c.Get("email"),
			"role":  c.Get("role"),
		},
	}, "")
}
