package model

import (
	"time"

	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

// SeatingConfig is a named seating config saved by a teacher.  The config
// itself is kept in its raw text form so that what the teacher typed is
// returned unchanged, including configs that no longer validate.
type SeatingConfig struct {
	ID        uint64            `json:"id"`         // seating_configs.id
	OwnerID   uint64            `json:"owner_id"`   // seating_configs.owner_id
	Name      string            `json:"name"`       // seating_configs.name
	Raw       seating.RawConfig `json:"config"`     // seating_configs.config_json
	CreatedAt time.Time         `json:"created_at"` // seating_configs.created_at
	UpdatedAt time.Time         `json:"updated_at"` // seating_configs.updated_at
}

// Generation records one seat table produced from a saved config.  Rows
// holds the grid exactly as returned to the client, leader marks included.
type Generation struct {
	ID          uint64     `json:"id"`                     // generations.id
	ConfigID    uint64     `json:"config_id"`              // generations.config_id
	OwnerID     uint64     `json:"owner_id"`               // generations.owner_id
	Seed        string     `json:"seed"`                   // generations.seed
	SeedLabel   string     `json:"seed_label"`             // generations.seed_label
	LuckyPerson *string    `json:"lucky_person,omitempty"` // generations.lucky_person (nullable)
	Rows        [][]string `json:"rows"`                   // generations.rows_json
	CreatedAt   time.Time  `json:"created_at"`             // generations.created_at
}
