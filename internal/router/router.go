package router // package router registers the HTTP routes of the API

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Calboot/RandomSeatGenerator/internal/handler"
	"github.com/Calboot/RandomSeatGenerator/internal/metrics"
	"github.com/Calboot/RandomSeatGenerator/internal/middleware"
)

// New returns an echo instance with panic recovery and one log line per
// request.
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("%s %s -> %d (%s): %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	return e
}

// RegisterRoutes registers the unauthenticated operational endpoints.
// m may be nil, in which case /metrics is not served.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler, m *metrics.Metrics) {
	e.GET("/healthz", h.Health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.RouteNotFound("/v1/*", notFound)
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// profile endpoint /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// refresh rotates the refresh token, refresh-access keeps it
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// logout takes a refresh token or a bearer token, so no JWTAuth here
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the generation endpoints anyone may call.  Both
// sit behind the rate limiter.
func RegisterPublic(e *echo.Echo, s *handler.SeatingHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/seating")
	g.POST("/preview", s.Preview, limit)
	g.POST("/generate", s.Generate, limit)
}

// notFound keeps unknown routes in the JSON error format.
func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
}
