package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/solarspark/store/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Every endpoint answers with the same envelope:
// {"success":true,"data":...} or {"success":false,"error":{...}}.
func respondOK(c echo.Context, code int, data any, message string) error {
	body := map[string]any{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(code, body)
}

func respondError(c echo.Context, code int, message string, details any) error {
	return c.JSON(code, map[string]any{
		"success": false,
		"error":   errorBody{Message: message, Details: details},
	})
}

var sentinels = []error{
	service.ErrValidation,
	service.ErrNotFound,
	service.ErrConflict,
	service.ErrUnauthorized,
	service.ErrInsufficientStock,
}

// messageOf strips the sentinel prefix so clients see "order 5 not
// found" rather than "not found: order 5 not found".
func messageOf(err error) string {
	msg := err.Error()
	for _, s := range sentinels {
		if rest, ok := strings.CutPrefix(msg, s.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondDomainError(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		return respondError(c, status, "internal server error", nil)
	}
	return respondError(c, status, messageOf(err), nil)
}
