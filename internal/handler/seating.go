package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Calboot/RandomSeatGenerator/internal/seating"
	"github.com/Calboot/RandomSeatGenerator/internal/service"
)

// SeatingHandler serves the public generation endpoints.  Nothing is stored.
type SeatingHandler struct {
	Service *service.SeatingService
}

func NewSeatingHandler(s *service.SeatingService) *SeatingHandler {
	return &SeatingHandler{Service: s}
}

type generateReq struct {
	Config seating.RawConfig `json:"config"`
	Seed   seating.Text      `json:"seed"`
}

// Preview returns an empty table with the dimensions of the posted config.
// POST /v1/seating/preview
func (h *SeatingHandler) Preview(c echo.Context) error {
	var raw seating.RawConfig
	if err := c.Bind(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	table, err := h.Service.Preview(raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}

// Generate arranges the posted config with the posted seed.  Without a seed
// a random one is drawn and reported in seed_label.
// POST /v1/seating/generate
func (h *SeatingHandler) Generate(c echo.Context) error {
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	table, err := h.Service.Generate(c.Request().Context(), req.Config, string(req.Seed))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, table)
}
