package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/models"
	"github.com/solarspark/store/pkg/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func claimsFromRequest(c echo.Context, secret []byte) (*tokens.AccessClaims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a bearer token")
	}

	claims, err := tokens.AccessClaimsFromToken(raw, secret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.Subject)
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
}

func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFromRequest(c, m.JWTSecret)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFromRequest(c, m.JWTSecret)
		if err != nil {
			return err
		}
		if claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}
