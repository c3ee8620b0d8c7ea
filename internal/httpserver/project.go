package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/service"
)

type ProjectHandler struct {
	Svc *service.ProjectService
}

type projectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"github_url"`
}

func (r projectRequest) toModel() *models.PinnedProject {
	return &models.PinnedProject{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		GithubURL:   r.GithubURL,
	}
}

func (h *ProjectHandler) GetAll(c echo.Context) error {
	projects, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	project := req.toModel()
	if err := h.Svc.Add(c.Request().Context(), project); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.Update(c.Request().Context(), id, req.toModel()); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}
