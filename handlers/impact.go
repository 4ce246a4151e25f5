package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ImpactSummary(c echo.Context) error {
	summary, err := h.impact.Summary(c.Request().Context())
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) AdminOverview(c echo.Context) error {
	overview, err := h.impact.Overview(c.Request().Context())
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, overview)
}
