package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Calboot/RandomSeatGenerator/internal/queue"
)

// AMQPPublisher publishes seat table events to RabbitMQ.  Each publish uses
// its own connection; generation is rate limited, so the volume is low.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

// PublishSeatTableGenerated sends ev as a persistent JSON message to the
// seating.generated queue.  Errors are logged and returned; callers usually
// ignore them.
func (p *AMQPPublisher) PublishSeatTableGenerated(ctx context.Context, ev queue.SeatTableGeneratedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event: %v", err)
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable, same arguments as the consumer
	if _, err := ch.QueueDeclare(queue.GeneratedQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", queue.GeneratedQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Printf("rabbitmq: publish: %v", err)
	}
	return err
}
