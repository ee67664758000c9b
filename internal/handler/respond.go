package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Calboot/RandomSeatGenerator/internal/middleware"
	"github.com/Calboot/RandomSeatGenerator/internal/repository"
	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

// dbTimeout bounds every handler's database work.
const dbTimeout = 5 * time.Second

// writeError maps service, repository and engine errors to JSON responses.
func writeError(c echo.Context, err error) error {
	var ice *seating.IllegalConfigError
	switch {
	case errors.As(err, &ice):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "illegal config", "problems": ice.Problems})
	case errors.Is(err, seating.ErrGenerationTimeout):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "no valid seat table found in time; relax the constraints or try another seed",
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "name already in use"})
	case errors.Is(err, context.Canceled):
		log.Printf("request %s %s canceled: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "request canceled"})
	}
	log.Printf("request %s %s failed: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}

// owner returns the authenticated caller and the :id route parameter.  It
// writes the 401 or 400 response itself and reports false when it did.
func owner(c echo.Context) (uid, id uint64, ok bool, err error) {
	uid, ok = middleware.UserID(c)
	if !ok {
		return 0, 0, false, unauthorized(c)
	}
	id, ok = pathID(c)
	if !ok {
		return 0, 0, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return uid, id, true, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}
