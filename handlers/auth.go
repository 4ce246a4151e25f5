package handlers

import (
	"net/http"
	"strings"

	"github.com/feedchain/backend/models"
	"github.com/labstack/echo/v4"
)

const registeredMessage = "User created. You can now sign in with this email and password."

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return h.toHTTPError(err)
	}

	user, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		return h.toHTTPError(err)
	}

	return c.JSON(http.StatusOK, RegisterResponse{
		Message: registeredMessage,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
	})
}

// Login authenticates with email and password when both are given and
// falls back to a demo login when only a role is sent.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" && req.Password != nil {
		token, err := h.auth.Login(ctx, *req.Email, *req.Password)
		if err != nil {
			return h.toHTTPError(err)
		}
		return c.JSON(http.StatusOK, token)
	}

	if req.Role == nil || *req.Role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingLoginData)
	}

	role, err := models.ParseRole(*req.Role)
	if err != nil {
		return h.toHTTPError(err)
	}

	token, err := h.auth.DemoLogin(ctx, role)
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, token)
}

func (h *Handler) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MeResponse{UserID: p.UserID, Role: p.Role})
}
