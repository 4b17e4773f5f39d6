package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loginPayload struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type registerPayload struct {
	Nama     string `form:"nama" json:"nama" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
}

func (s *APIService) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	admin, token, err := s.auth.Login(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return respondDomainError(c, err, "Email atau password salah", "Terjadi kesalahan sistem saat login")
	}

	return respondMessage(c, http.StatusOK, map[string]any{
		"admin": admin,
		"token": token,
	}, "Login berhasil")
}

func (s *APIService) register(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&payload); err != nil {
		return err
	}

	id, err := s.auth.Register(c.Request().Context(), payload.Nama, payload.Email, payload.Password)
	if err != nil {
		s.log.Error("registering admin failed", zap.String("email", payload.Email), zap.Error(err))
		return respondDomainError(c, err, "Admin not found", "Terjadi kesalahan sistem saat registrasi")
	}
	return respondMessage(c, http.StatusCreated, map[string]any{"id": id}, "Admin berhasil dibuat")
}

func (s *APIService) verifyToken(c echo.Context) error {
	token := c.Request().Header.Get("Authorization")
	const prefix = "Bearer "
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return respondError(c, http.StatusUnauthorized, "Token tidak ditemukan")
	}

	admin, err := s.auth.VerifyToken(c.Request().Context(), token[len(prefix):])
	if err != nil {
		return respondDomainError(c, err, "Token tidak valid", "Token tidak valid")
	}
	return respondMessage(c, http.StatusOK, admin, "Token valid")
}
