package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"encoding/json"
	"errors"

	"github.com/Calboot/RandomSeatGenerator/internal/model"
)

// SeatingConfigRepo stores named seating configs per owner.  The raw config
// is kept as a JSON document in config_json.
type SeatingConfigRepo struct {
	db *sql.DB
}

// NewSeatingConfigRepo constructs a SeatingConfigRepo with the given DB handle.
func NewSeatingConfigRepo(db *sql.DB) *SeatingConfigRepo {
	return &SeatingConfigRepo{db: db}
}

const seatingConfigColumns = `id, owner_id, name, config_json, created_at, updated_at`

// Create inserts cfg and fills in its ID and timestamps.  A duplicate name
// for the same owner yields ErrConflict.
func (r *SeatingConfigRepo) Create(ctx context.Context, cfg *model.SeatingConfig) error {
	doc, err := json.Marshal(cfg.Raw)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO seating_configs (owner_id, name, config_json) VALUES (?, ?, ?)`,
		cfg.OwnerID, cfg.Name, doc)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	// read back so created_at/updated_at come from the database
	stored, err := r.GetByIDAndOwner(ctx, uint64(id), cfg.OwnerID)
	if err != nil {
		return err
	}
	*cfg = *stored
	return nil
}

// GetByIDAndOwner returns the config only if it belongs to ownerID.
func (r *SeatingConfigRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.SeatingConfig, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+seatingConfigColumns+` FROM seating_configs WHERE id = ? AND owner_id = ?`, id, ownerID)
	cfg, err := scanSeatingConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return cfg, err
}

// ListByOwner returns the owner's configs, newest first.
func (r *SeatingConfigRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.SeatingConfig, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+seatingConfigColumns+` FROM seating_configs WHERE owner_id = ? ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.SeatingConfig{}
	for rows.Next() {
		cfg, err := scanSeatingConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

// UpdateByIDAndOwner replaces name and config of an owned config.
func (r *SeatingConfigRepo) UpdateByIDAndOwner(ctx context.Context, cfg *model.SeatingConfig) error {
	doc, err := json.Marshal(cfg.Raw)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE seating_configs SET name = ?, config_json = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ?`,
		cfg.Name, doc, cfg.ID, cfg.OwnerID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes an owned config; its history goes with it.
func (r *SeatingConfigRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM seating_configs WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSeatingConfig(s scanner) (*model.SeatingConfig, error) {
	var (
		cfg model.SeatingConfig
		doc []byte
	)
	if err := s.Scan(&cfg.ID, &cfg.OwnerID, &cfg.Name, &doc, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(doc, &cfg.Raw); err != nil {
		return nil, err
	}
	return &cfg, nil
}
