package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "reservations_fanout"
	DefaultQueue    = "reservations.notifications.q"
)

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
	Prefetch int
}

// AMQP publishes events to a durable fanout exchange and consumes them back
// from a bound queue.
type AMQP struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	prefetch int

	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

func DialAMQP(cfg AMQPConfig) (*AMQP, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 10
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	a := &AMQP{conn: conn, ch: ch, exchange: cfg.Exchange, queue: cfg.Queue, prefetch: cfg.Prefetch}
	if err := a.declare(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *AMQP) declare() error {
	if err := a.ch.ExchangeDeclare(a.exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", a.exchange, err)
	}
	if _, err := a.ch.QueueDeclare(a.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", a.queue, err)
	}
	if err := a.ch.QueueBind(a.queue, "", a.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", a.queue, err)
	}
	return nil
}

func (a *AMQP) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ch.PublishWithContext(ctx, a.exchange, string(e.Type), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Type:         string(e.Type),
		Body:         body,
	})
}

// Consume delivers queued events to h until ctx is cancelled or the
// delivery channel closes. Events that fail to decode or handle are
// rejected without requeue.
func (a *AMQP) Consume(ctx context.Context, h Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if err := a.ch.Qos(a.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := a.ch.Consume(a.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", a.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			e, err := decodeEvent(d.Body)
			if err != nil {
				logger.Printf("WARN: drop undecodable event: %v", err)
				_ = d.Nack(false, false)
				continue
			}
			if err := h(ctx, e); err != nil {
				logger.Printf("WARN: handle event type=%s id=%s: %v", e.Type, e.ReservationID, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (a *AMQP) Close() {
	if a == nil {
		return
	}
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
}

func decodeEvent(body []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return Event{}, err
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("event type missing")
	}
	return e, nil
}
