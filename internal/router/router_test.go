package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Calboot/RandomSeatGenerator/internal/handler"
	"github.com/Calboot/RandomSeatGenerator/internal/metrics"
)

func pass(next echo.HandlerFunc) echo.HandlerFunc { return next }

func TestRoutes(t *testing.T) {
	e := New()
	RegisterRoutes(e, &handler.HealthHandler{}, metrics.New("test"))
	RegisterAuth(e, &handler.AuthHandler{}, "secret")
	RegisterPublic(e, &handler.SeatingHandler{}, pass)
	RegisterTeacher(e, &handler.ConfigHandler{}, "secret", pass, pass)

	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"POST /v1/auth/register",
		"POST /v1/auth/login",
		"POST /v1/auth/refresh",
		"POST /v1/auth/refresh-access",
		"POST /v1/auth/logout",
		"GET /v1/me",
		"POST /v1/seating/preview",
		"POST /v1/seating/generate",
		"POST /v1/configs",
		"GET /v1/configs",
		"GET /v1/configs/:id",
		"PUT /v1/configs/:id",
		"DELETE /v1/configs/:id",
		"GET /v1/configs/:id/table",
		"GET /v1/configs/:id/table.xlsx",
		"GET /v1/configs/:id/generations",
	} {
		assert.True(t, got[want], "missing route %s", want)
	}
}

func TestProtectedAndUnknownRoutes(t *testing.T) {
	e := New()
	RegisterRoutes(e, &handler.HealthHandler{}, nil)
	RegisterTeacher(e, &handler.ConfigHandler{}, "secret", pass, pass)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/configs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","db":"disabled","redis":"disabled"}`, rec.Body.String())
}

func TestPublicRoutesAreRateLimited(t *testing.T) {
	e := New()
	deny := func(echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too_many_requests"})
		}
	}
	RegisterPublic(e, &handler.SeatingHandler{}, deny)

	for _, path := range []string{"/v1/seating/preview", "/v1/seating/generate"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, path)
	}
}
