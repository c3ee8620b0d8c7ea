package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/stats"
)

type StatsHandler struct {
	Client *stats.Client
}

// Upstream failures answer with an inactive/empty payload instead of an
// error: the portfolio page should render even when WakaTime is down.
func (h *StatsHandler) WakaTime(c echo.Context) error {
	res, err := h.Client.WakaTime(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("wakatime_fetch_failed", "error", err)
		return c.JSON(http.StatusOK, stats.WakaStats{IsCodingNow: false})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *StatsHandler) GitHub(c echo.Context) error {
	res, err := h.Client.GitHub(c.Request().Context())
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("github_fetch_failed", "error", err)
		return c.JSON(http.StatusOK, stats.GitHubStats{})
	}
	return c.JSON(http.StatusOK, res)
}
