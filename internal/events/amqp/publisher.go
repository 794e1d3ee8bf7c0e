// Package amqp publishes committed poll mutations to a RabbitMQ queue so that
// result dashboards can follow tallies without polling the service.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/14kear/pollstore/internal/domain/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"log/slog"
	"sync"
	"time"
)

const (
	EventPollCreated = "poll.created"
	EventVoteCast    = "vote.cast"
)

// Event is the message body.
type Event struct {
	Type       string       `json:"type"`
	PollID     string       `json:"poll_id"`
	Option     string       `json:"option,omitempty"`
	Poll       *models.Poll `json:"poll,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

type Publisher struct {
	log   *slog.Logger
	conn  *amqp.Connection
	queue string

	mu sync.Mutex
	ch *amqp.Channel
}

// Dial connects to url, retrying a few times, and declares a durable queue.
func Dial(log *slog.Logger, url, queue string) (*Publisher, error) {
	const op = "events.amqp.Dial"

	var (
		conn *amqp.Connection
		err  error
	)
	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn("failed to connect to rabbitmq, retrying", slog.String("op", op), slog.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: channel: %w", op, err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: declare queue: %w", op, err)
	}

	log.Info("connected to rabbitmq", slog.String("queue", queue))

	return &Publisher{log: log, conn: conn, ch: ch, queue: queue}, nil
}

func (p *Publisher) PollCreated(ctx context.Context, poll models.Poll) error {
	return p.publish(ctx, Event{
		Type:       EventPollCreated,
		PollID:     poll.ID,
		Poll:       &poll,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) VoteCast(ctx context.Context, pollID, option string) error {
	return p.publish(ctx, Event{
		Type:       EventVoteCast,
		PollID:     pollID,
		Option:     option,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, e Event) error {
	const op = "events.amqp.publish"

	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// amqp.Channel нельзя использовать для публикации из нескольких горутин
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         e.Type,
		Timestamp:    e.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.log.Warn("failed to close amqp channel", slog.String("error", err.Error()))
	}
	return p.conn.Close()
}
