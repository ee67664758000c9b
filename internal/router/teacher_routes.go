package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Calboot/RandomSeatGenerator/internal/handler"
	"github.com/Calboot/RandomSeatGenerator/internal/middleware"
	"github.com/Calboot/RandomSeatGenerator/internal/model"
)

// RegisterTeacher registers the saved config endpoints under /v1/configs.
// All routes require a valid JWT and the TEACHER role.  Table endpoints are
// rate limited; the JSON table is also cached per config.
func RegisterTeacher(e *echo.Echo, h *handler.ConfigHandler, jwtSecret string, limit, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/configs",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleTeacher),
	)

	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	// cache runs inside the limiter so that hits still cost a token
	g.GET("/:id/table", h.Table, limit, cache)
	g.GET("/:id/table.xlsx", h.TableXLSX, limit)
	g.GET("/:id/generations", h.Generations)
}
