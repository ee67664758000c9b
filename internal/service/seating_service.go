// Package service holds the application logic between the HTTP handlers and
// the seating engine: loading saved configs, generating tables, recording
// history and announcing new tables.
package service

import (
	"context"
	"log"
	"time"

	"github.com/Calboot/RandomSeatGenerator/internal/metrics"
	"github.com/Calboot/RandomSeatGenerator/internal/model"
	"github.com/Calboot/RandomSeatGenerator/internal/queue"
	"github.com/Calboot/RandomSeatGenerator/internal/seating"
)

// ConfigStore loads saved configs.  *repository.SeatingConfigRepo implements it.
type ConfigStore interface {
	GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.SeatingConfig, error)
}

// GenerationStore records generated tables.  *repository.GenerationRepo
// implements it.
type GenerationStore interface {
	Create(ctx context.Context, g *model.Generation) error
}

// EventPublisher announces generated tables.
type EventPublisher interface {
	PublishSeatTableGenerated(ctx context.Context, ev queue.SeatTableGeneratedEvent) error
}

// SeatingService generates seat tables for the API.
type SeatingService struct {
	Configs     ConfigStore
	Generations GenerationStore
	Events      EventPublisher     // optional
	Generator   *seating.Generator // nil uses the package default
	Metrics     *metrics.Metrics   // optional
	Now         func() time.Time
}

func NewSeatingService(configs ConfigStore, gens GenerationStore, events EventPublisher, gen *seating.Generator) *SeatingService {
	return &SeatingService{Configs: configs, Generations: gens, Events: events, Generator: gen, Now: time.Now}
}

// Result is a table generated from a saved config, with its history entry.
type Result struct {
	Config     *model.SeatingConfig
	Table      *seating.SeatTable
	Generation *model.Generation
}

// Preview returns an empty table with the dimensions of raw.
func (s *SeatingService) Preview(raw seating.RawConfig) (*seating.SeatTable, error) {
	cfg, err := raw.ParseDimensions()
	if err != nil {
		return nil, err
	}
	return seating.GenerateEmpty(cfg)
}

// Generate parses raw and generates a table for seedText.  An empty seed is
// replaced by a random one so the result can still be reproduced.
func (s *SeatingService) Generate(ctx context.Context, raw seating.RawConfig, seedText string) (*seating.SeatTable, error) {
	return s.generate(ctx, metrics.SourceAdHoc, raw, seedText)
}

func (s *SeatingService) generate(ctx context.Context, source string, raw seating.RawConfig, seedText string) (table *seating.SeatTable, err error) {
	defer func(start time.Time) { s.Metrics.ObserveGeneration(source, start, table, err) }(time.Now())

	cfg, err := raw.Parse()
	if err != nil {
		return nil, err
	}
	if seedText == "" {
		if seedText, err = seating.RandomSeedText(seating.DefaultSeedLength); err != nil {
			return nil, err
		}
	}
	if s.Generator == nil {
		return seating.Generate(ctx, cfg, seedText)
	}
	return s.Generator.Generate(ctx, cfg, seedText)
}

// LoadTable generates a table from a saved config without recording it.
// Used by exports.
func (s *SeatingService) LoadTable(ctx context.Context, ownerID, configID uint64, seedText string) (*model.SeatingConfig, *seating.SeatTable, error) {
	saved, err := s.Configs.GetByIDAndOwner(ctx, configID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	table, err := s.generate(ctx, metrics.SourceSaved, saved.Raw, seedText)
	if err != nil {
		return nil, nil, err
	}
	return saved, table, nil
}

// GenerateForConfig generates a table from the owner's saved config, records
// it and publishes a SeatTableGeneratedEvent.  A failed publish is logged and
// does not fail the call.
func (s *SeatingService) GenerateForConfig(ctx context.Context, ownerID, configID uint64, seedText string) (*Result, error) {
	if seedText == "" {
		var err error
		if seedText, err = seating.RandomSeedText(seating.DefaultSeedLength); err != nil {
			return nil, err
		}
	}
	saved, table, err := s.LoadTable(ctx, ownerID, configID, seedText)
	if err != nil {
		return nil, err
	}

	gen := &model.Generation{
		ConfigID:  saved.ID,
		OwnerID:   ownerID,
		Seed:      seedText,
		SeedLabel: table.SeedLabel(),
		Rows:      table.Rows(),
		CreatedAt: s.Now().UTC(),
	}
	if lucky := table.LuckyPerson(); lucky != "" {
		gen.LuckyPerson = &lucky
	}
	if err := s.Generations.Create(ctx, gen); err != nil {
		return nil, err
	}

	if s.Events != nil {
		ev := queue.SeatTableGeneratedEvent{
			GenerationID: gen.ID,
			ConfigID:     saved.ID,
			ConfigName:   saved.Name,
			OwnerID:      ownerID,
			SeedLabel:    table.SeedLabel(),
			LuckyPerson:  table.LuckyPerson(),
			Rows:         gen.Rows,
			Columns:      table.ColumnCount(),
			GeneratedAt:  gen.CreatedAt.Format(time.RFC3339),
		}
		if err := s.Events.PublishSeatTableGenerated(ctx, ev); err != nil {
			log.Printf("seating: publish event for generation %d: %v", gen.ID, err)
		}
	}
	return &Result{Config: saved, Table: table, Generation: gen}, nil
}
