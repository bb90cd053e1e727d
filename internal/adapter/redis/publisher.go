// Package redis publishes suggestion lifecycle events on a Redis pub/sub
// channel.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/studioops-backend/internal/domain"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "suggestion.events"

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

type client interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Publisher sends events as JSON messages.
type Publisher struct {
	client  client
	channel string
	log     *slog.Logger
}

// NewPublisher connects to Redis and verifies the connection.
func NewPublisher(ctx context.Context, cfg Config, log *slog.Logger) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return newPublisher(rdb, cfg.Channel, log), nil
}

func newPublisher(c client, channel string, log *slog.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: c, channel: channel, log: log.With("adapter", "redis")}
}

// Publish sends one event. The number of receivers is only logged; an event
// nobody listens to is not an error.
func (p *Publisher) Publish(ctx context.Context, event domain.SuggestionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Name, err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Name, err)
	}

	p.log.DebugContext(ctx, "event published",
		slog.String("channel", p.channel),
		slog.String("event", event.Name),
		slog.String("suggestion_id", event.SuggestionID.String()),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// Ping reports whether Redis is reachable. Used by the readiness probe.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Noop drops every event. It is used when Redis is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, domain.SuggestionEvent) error { return nil }
