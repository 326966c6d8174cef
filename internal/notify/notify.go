// Package notify publishes change-notification events after an import so
// downstream consumers (dashboards) can invalidate caches. Delivery is
// fire-and-forget, at most once; a failed publish never fails the import.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event describes one ledger change.
type Event struct {
	ID       string    `json:"id"`
	Reason   string    `json:"reason"`
	MarketID int64     `json:"marketId"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	At       time.Time `json:"at"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(reason string, marketID int64, year, month int) Event {
	return Event{
		ID:       uuid.New().String(),
		Reason:   reason,
		MarketID: marketID,
		Year:     year,
		Month:    month,
		At:       time.Now(),
	}
}

// Notifier is the outbound notification port.
type Notifier interface {
	PricesChanged(evt Event)
}

// Nop discards every event.
type Nop struct{}

// PricesChanged does nothing.
func (Nop) PricesChanged(Event) {}

const publishTimeout = 2 * time.Second

// RedisPublisher publishes events on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects a publisher from a redis:// URL.
func NewRedisPublisher(url, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisPublisher{client: redis.NewClient(opts), channel: channel}, nil
}

// PricesChanged publishes the event. Failures are logged and dropped.
func (p *RedisPublisher) PricesChanged(evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		log.Printf("notify: publish failed: %v", err)
	}
}

// Close releases the client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
