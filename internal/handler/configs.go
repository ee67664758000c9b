package handler

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/Calboot/RandomSeatGenerator/internal/export"
	"github.com/Calboot/RandomSeatGenerator/internal/middleware"
	"github.com/Calboot/RandomSeatGenerator/internal/model"
	"github.com/Calboot/RandomSeatGenerator/internal/seating"
	"github.com/Calboot/RandomSeatGenerator/internal/service"
)

// ConfigRepository is the part of *repository.SeatingConfigRepo the config
// endpoints use.
type ConfigRepository interface {
	Create(ctx context.Context, cfg *model.SeatingConfig) error
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.SeatingConfig, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]*model.SeatingConfig, error)
	UpdateByIDAndOwner(ctx context.Context, cfg *model.SeatingConfig) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error
}

// HistoryRepository lists recorded generations.
type HistoryRepository interface {
	ListByConfig(ctx context.Context, configID, ownerID uint64, limit int) ([]*model.Generation, error)
}

// ConfigHandler serves a teacher's saved configs and the tables generated
// from them.
type ConfigHandler struct {
	Configs ConfigRepository
	History HistoryRepository
	Service *service.SeatingService
	// Invalidate drops cached tables of a config after it changed.  Optional.
	Invalidate func(ctx context.Context, configID uint64) error
	Now        func() time.Time
}

func NewConfigHandler(configs ConfigRepository, history HistoryRepository, svc *service.SeatingService) *ConfigHandler {
	return &ConfigHandler{Configs: configs, History: history, Service: svc, Now: time.Now}
}

type configReq struct {
	Name   string            `json:"name"`
	Config seating.RawConfig `json:"config"`
}

const maxConfigName = 255

// bindConfig reads and checks a create/update body.  It writes the 400
// response itself and reports false when it did.
func bindConfig(c echo.Context) (configReq, bool, error) {
	var req configReq
	if err := c.Bind(&req); err != nil {
		return req, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || utf8.RuneCountInString(req.Name) > maxConfigName {
		return req, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be 1 to 255 characters"})
	}
	if _, err := req.Config.Parse(); err != nil {
		return req, false, writeError(c, err)
	}
	return req, true, nil
}

func (h *ConfigHandler) invalidate(ctx context.Context, id uint64) {
	if h.Invalidate == nil {
		return
	}
	if err := h.Invalidate(ctx, id); err != nil {
		log.Printf("cache: invalidate config %d: %v", id, err)
	}
}

// Create saves a new config.  Only configs that validate are accepted.
// POST /v1/configs
func (h *ConfigHandler) Create(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	req, ok, err := bindConfig(c)
	if !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cfg := &model.SeatingConfig{OwnerID: uid, Name: req.Name, Raw: req.Config}
	if err := h.Configs.Create(ctx, cfg); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, cfg)
}

// List returns the caller's configs.
// GET /v1/configs
func (h *ConfigHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Configs.ListByOwner(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"configs": list})
}

// Get returns one config.
// GET /v1/configs/:id
func (h *ConfigHandler) Get(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cfg, err := h.Configs.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// Update replaces name and config and drops cached tables.
// PUT /v1/configs/:id
func (h *ConfigHandler) Update(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	req, ok, err := bindConfig(c)
	if !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cfg := &model.SeatingConfig{ID: id, OwnerID: uid, Name: req.Name, Raw: req.Config}
	if err := h.Configs.UpdateByIDAndOwner(ctx, cfg); err != nil {
		return writeError(c, err)
	}
	h.invalidate(ctx, id)
	saved, err := h.Configs.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete removes a config with its history and cached tables.
// DELETE /v1/configs/:id
func (h *ConfigHandler) Delete(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Configs.DeleteByIDAndOwner(ctx, id, uid); err != nil {
		return writeError(c, err)
	}
	h.invalidate(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

type tableResp struct {
	ConfigID     uint64             `json:"config_id"`
	GenerationID uint64             `json:"generation_id"`
	Seed         string             `json:"seed"`
	Table        *seating.SeatTable `json:"table"`
}

// Table generates a seat table from a saved config and records it.  Without
// ?seed= a random seed is used and the response must not be cached.
// GET /v1/configs/:id/table
func (h *ConfigHandler) Table(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	seed := c.QueryParam("seed")
	if seed == "" {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	}
	res, err := h.Service.GenerateForConfig(c.Request().Context(), uid, id, seed)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tableResp{
		ConfigID:     id,
		GenerationID: res.Generation.ID,
		Seed:         res.Generation.Seed,
		Table:        res.Table,
	})
}

// mimeXLSX is the content type of .xlsx files.
const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TableXLSX downloads the table for ?seed= as a spreadsheet.  Downloads are
// not recorded in the history.
// GET /v1/configs/:id/table.xlsx
func (h *ConfigHandler) TableXLSX(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	seed := c.QueryParam("seed")
	if seed == "" {
		if seed, err = seating.RandomSeedText(seating.DefaultSeedLength); err != nil {
			return writeError(c, err)
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	}
	_, table, err := h.Service.LoadTable(c.Request().Context(), uid, id, seed)
	if err != nil {
		return writeError(c, err)
	}

	now := h.Now()
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, table, now); err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.FileName(now)+`"`)
	c.Response().Header().Set("X-Seed", seed)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

// Generations lists the newest recorded tables of a config; ?limit= caps
// the count.
// GET /v1/configs/:id/generations
func (h *ConfigHandler) Generations(c echo.Context) error {
	uid, id, ok, err := owner(c)
	if !ok {
		return err
	}
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Configs.GetByIDAndOwner(ctx, id, uid); err != nil {
		return writeError(c, err)
	}
	list, err := h.History.ListByConfig(ctx, id, uid, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"generations": list})
}
