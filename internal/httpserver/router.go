package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arslanca/portfolio/internal/middleware"
)

type Deps struct {
	Gate             *middleware.Gate
	AuthHandler      *AuthHandler
	BlogHandler      *BlogHandler
	ProjectHandler   *ProjectHandler
	TechStackHandler *TechStackHandler
	ContactHandler   *ContactHandler
	StatsHandler     *StatsHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api", d.Gate.Establish)

	auth := api.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh-token", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)
	auth.GET("/check", d.AuthHandler.Check)

	blog := api.Group("/blog")
	blog.GET("", d.BlogHandler.GetAll)
	blog.GET("/search", d.BlogHandler.Search)
	blog.POST("", d.BlogHandler.Create, middleware.RequireAuth)
	blog.PUT("/:id", d.BlogHandler.Update, middleware.RequireAuth)
	blog.DELETE("/:id", d.BlogHandler.Delete, middleware.RequireAuth)

	projects := api.Group("/projects")
	projects.GET("", d.ProjectHandler.GetAll)
	projects.POST("", d.ProjectHandler.Create, middleware.RequireAuth)
	projects.PUT("/:id", d.ProjectHandler.Update, middleware.RequireAuth)
	projects.DELETE("/:id", d.ProjectHandler.Delete, middleware.RequireAuth)

	techstack := api.Group("/techstack")
	techstack.GET("", d.TechStackHandler.GetAll)
	techstack.POST("", d.TechStackHandler.Create, middleware.RequireAuth)
	techstack.PUT("/:id", d.TechStackHandler.Update, middleware.RequireAuth)
	techstack.DELETE("/:id", d.TechStackHandler.Delete, middleware.RequireAuth)

	api.POST("/contact", d.ContactHandler.Send)

	statsGroup := api.Group("/stats")
	statsGroup.GET("/wakatime", d.StatsHandler.WakaTime)
	statsGroup.GET("/github", d.StatsHandler.GitHub)
}
