package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/models"
	"github.com/arslanca/portfolio/internal/service"
)

type BlogHandler struct {
	Svc *service.BlogService
}

type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsDraft bool   `json:"is_draft"`
}

func (h *BlogHandler) GetAll(c echo.Context) error {
	posts, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *BlogHandler) Create(c echo.Context) error {
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	post := models.BlogPost{Title: req.Title, Content: req.Content, IsDraft: req.IsDraft}
	if err := h.Svc.Add(c.Request().Context(), &post); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req blogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.Svc.Update(c.Request().Context(), id, req.Title, req.Content, req.IsDraft); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *BlogHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := paginate(page, size)

	total, posts, err := h.Svc.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "posts": posts})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func paginate(page, size int) (from, limit int) {
	if size <= 0 || size > 50 {
		size = 10
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * size, size
}
