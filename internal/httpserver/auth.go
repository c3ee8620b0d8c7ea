package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/logging"
	"github.com/arslanca/portfolio/internal/middleware"
	"github.com/arslanca/portfolio/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password, c.RealIP(), req.RememberMe)
	if err != nil {
		return toHTTPError(err)
	}

	c.SetCookie(createCookie(AccessCookieName, res.AccessToken, accessCookiePath, res.AccessExp))
	c.SetCookie(createCookie(RefreshCookieName, res.RefreshToken, refreshCookiePath, res.RefreshExp))
	return c.NoContent(http.StatusOK)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_failed", "status", 401, "reason", "missing_cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token cookie missing")
	}

	res, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return toHTTPError(err)
	}

	c.SetCookie(createCookie(AccessCookieName, res.AccessToken, accessCookiePath, res.AccessExp))
	c.SetCookie(createCookie(RefreshCookieName, res.RefreshToken, refreshCookiePath, res.RefreshExp))
	return c.NoContent(http.StatusOK)
}

// Logout always answers 200: revoking nothing is still a logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var accessToken, refreshToken string
	if cookie, err := c.Cookie(AccessCookieName); err == nil {
		accessToken = cookie.Value
	}
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.Svc.Logout(ctx, accessToken, refreshToken); err != nil {
		return toHTTPError(err)
	}

	c.SetCookie(deleteCookie(AccessCookieName, accessCookiePath))
	c.SetCookie(deleteCookie(RefreshCookieName, refreshCookiePath))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) Check(c echo.Context) error {
	if _, ok := middleware.FromEcho(c); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.NoContent(http.StatusOK)
}
