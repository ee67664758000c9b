package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports the state of the service's backends.
type HealthHandler struct {
	DB    Pinger
	Redis *redis.Client // nil when redis is disabled
}

// Health returns 200 when the database answers and 503 otherwise.  Redis is
// optional, so its state is reported but never fails the check.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	db := "ok"
	if h.DB == nil {
		db = "disabled"
	} else if err := h.DB.PingContext(ctx); err != nil {
		db, status, code = "down", "degraded", http.StatusServiceUnavailable
	}
	cache := "disabled"
	if h.Redis != nil {
		cache = "ok"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			cache = "down"
		}
	}
	return c.JSON(code, echo.Map{"status": status, "db": db, "redis": cache})
}
