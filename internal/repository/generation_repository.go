package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Calboot/RandomSeatGenerator/internal/model"
)

// GenerationRepo keeps the history of seat tables produced from saved configs.
type GenerationRepo struct {
	db *sql.DB
}

func NewGenerationRepo(db *sql.DB) *GenerationRepo {
	return &GenerationRepo{db: db}
}

// DefaultHistoryLimit caps ListByConfig when the caller passes no limit.
const DefaultHistoryLimit = 50

// Create inserts g and sets its ID.  A zero CreatedAt is set to now.
func (r *GenerationRepo) Create(ctx context.Context, g *model.Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(g.Rows)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO generations (config_id, owner_id, seed, seed_label, lucky_person, rows_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ConfigID, g.OwnerID, g.Seed, g.SeedLabel, g.LuckyPerson, doc, g.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// ListByConfig returns the newest generations of an owned config.
func (r *GenerationRepo) ListByConfig(ctx context.Context, configID, ownerID uint64, limit int) ([]*model.Generation, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, config_id, owner_id, seed, seed_label, lucky_person, rows_json, created_at
		 FROM generations WHERE config_id = ? AND owner_id = ?
		 ORDER BY id DESC LIMIT ?`,
		configID, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Generation{}
	for rows.Next() {
		var (
			g     model.Generation
			lucky sql.NullString
			doc   []byte
		)
		if err := rows.Scan(&g.ID, &g.ConfigID, &g.OwnerID, &g.Seed, &g.SeedLabel, &lucky, &doc, &g.CreatedAt); err != nil {
			return nil, err
		}
		if lucky.Valid {
			g.LuckyPerson = &lucky.String
		}
		if err := json.Unmarshal(doc, &g.Rows); err != nil {
			return nil, err
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}
