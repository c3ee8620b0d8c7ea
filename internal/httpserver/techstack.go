package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/service"
)

type TechStackHandler struct {
	Svc *service.TechStackService
}

type techStackRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

func (h *TechStackHandler) GetAll(c echo.Context) error {
	stack, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stack)
}

func (h *TechStackHandler) Create(c echo.Context) error {
	var req techStackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	entry := models.TechStack{Name: req.Name, Level: req.Level}
	if err := h.Svc.Add(c.Request().Context(), &entry); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *TechStackHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req techStackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Level); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *TechStackHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}
