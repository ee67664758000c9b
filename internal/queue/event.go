// Package queue defines the seat table events exchanged over RabbitMQ and the
// background consumer that writes them to a log file.
package queue

// GeneratedQueueName is the durable queue carrying SeatTableGeneratedEvent.
const GeneratedQueueName = "seating.generated"

// SeatTableGeneratedEvent is published after a seat table has been generated
// from a saved config and recorded in the history.  It carries the full grid
// so consumers never need to query the database.
type SeatTableGeneratedEvent struct {
	GenerationID uint64     `json:"generation_id"`
	ConfigID     uint64     `json:"config_id"`
	ConfigName   string     `json:"config_name"`
	OwnerID      uint64     `json:"owner_id"`
	SeedLabel    string     `json:"seed_label"`
	LuckyPerson  string     `json:"lucky_person,omitempty"`
	Rows         [][]string `json:"rows"`
	Columns      int        `json:"columns"`
	GeneratedAt  string     `json:"generated_at"` // RFC 3339, UTC
}
