package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/service"
)

type ContactHandler struct {
	Svc *service.ContactService
}

func (h *ContactHandler) Send(c echo.Context) error {
	var req struct {
		SenderEmail string `json:"sender_email"`
		Subject     string `json:"subject"`
		Message     string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !strings.Contains(req.SenderEmail, "@") || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "sender_email and message are required")
	}

	err := h.Svc.Send(c.Request().Context(), c.RealIP(), req.SenderEmail, req.Subject, req.Message)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "mail sent"})
}
