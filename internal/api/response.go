package api

import (
	"errors"
	"net/http"

	"github.com/digidesa/desa-cms/internal/auth"
	"github.com/digidesa/desa-cms/internal/content"
	"github.com/digidesa/desa-cms/internal/village"
	"github.com/labstack/echo/v4"
)

// Response envelopes mirror the shape the admin frontend consumes: a success
// flag, the payload under "data", and an optional message.

func respondOK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": data})
}

func respondMessage(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, map[string]any{"success": true, "data": data, "message": message})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{"success": false, "message": message})
}

// respondDomainError maps domain sentinel errors to their HTTP equivalents,
// defaulting to a 500 with the given fallback message.
func respondDomainError(c echo.Context, err error, notFoundMsg, fallbackMsg string) error {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, village.ErrNotFound):
		return respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, village.ErrInvalidStatus):
		return respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, "Email atau password salah")
	case errors.Is(err, auth.ErrEmailTaken):
		return respondError(c, http.StatusBadRequest, "Email sudah terdaftar")
	case errors.Is(err, auth.ErrInvalidToken):
		return respondError(c, http.StatusUnauthorized, "Token tidak valid")
	default:
		return respondError(c, http.StatusInternalServerError, fallbackMsg)
	}
}
