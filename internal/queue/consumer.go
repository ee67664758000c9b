package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// GenerationLogFile is the file StartGenerationConsumer appends to inside its
// log directory.
const GenerationLogFile = "generation.log"

const maxBackoff = 30 * time.Second

// StartGenerationConsumer consumes seating.generated from the broker at url
// and appends one line per event to <logDir>/generation.log.  It reconnects
// with exponential back-off and returns only when ctx is done.
func StartGenerationConsumer(ctx context.Context, url, logDir string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("generation-consumer: dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("generation-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("generation-consumer: set QoS: %v", err)
	}
	if _, err := ch.QueueDeclare(GeneratedQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, GeneratedQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(d.Body, logDir); err != nil {
			log.Printf("generation-consumer: handle message: %v", err)
			_ = d.Nack(false, false) // drop; a poison message must not loop
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one event and appends its log line.
func HandleMessage(body []byte, logDir string) error {
	var ev SeatTableGeneratedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", logDir, err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, GenerationLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatEvent(ev) + "\n"); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatEvent renders ev as a single log line.  Rows are joined with "/" and
// seats with ",".
func FormatEvent(ev SeatTableGeneratedEvent) string {
	rows := make([]string, len(ev.Rows))
	for i, r := range ev.Rows {
		rows[i] = strings.Join(r, ",")
	}
	lucky := ev.LuckyPerson
	if lucky == "" {
		lucky = "-"
	}
	return fmt.Sprintf("[%s] Seat table generated | generation_id=%d | config_id=%d | config=%q | owner_id=%d | seed=%q | lucky=%q | columns=%d | rows=[%s]",
		ev.GeneratedAt, ev.GenerationID, ev.ConfigID, ev.ConfigName, ev.OwnerID, ev.SeedLabel, lucky, ev.Columns, strings.Join(rows, " / "))
}
