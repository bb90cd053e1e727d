package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/changelog"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/contact"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/email"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/emaillink"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/project"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/proposal"
	suggestionrepo "github.com/heartmarshall/studioops-backend/internal/adapter/postgres/suggestion"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/task"
	"github.com/heartmarshall/studioops-backend/internal/adapter/postgres/transcript"
	redispub "github.com/heartmarshall/studioops-backend/internal/adapter/redis"
	"github.com/heartmarshall/studioops-backend/internal/config"
	"github.com/heartmarshall/studioops-backend/internal/domain"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/handlers"
	"github.com/heartmarshall/studioops-backend/internal/service/suggestion/normalize"
)

type publisher interface {
	Publish(ctx context.Context, event domain.SuggestionEvent) error
}

// Engine is the suggestion service together with the resources it holds.
// Both the HTTP server and suggestctl build one.
type Engine struct {
	Service *suggestion.Service
	Pool    *pgxpool.Pool
	// Redis is nil when event publishing is disabled.
	Redis *redispub.Publisher
}

// NewEngine connects to PostgreSQL (and Redis when enabled) and wires the
// suggestion service with the builtin handlers.
func NewEngine(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Engine, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	var events publisher = redispub.Noop{}
	var rdb *redispub.Publisher
	if cfg.Redis.Enabled {
		rdb, err = redispub.NewPublisher(ctx, redispub.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		}, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("event publisher: %w", err)
		}
		events = rdb
	} else {
		log.Info("redis disabled, suggestion events will not be published")
	}

	e := newEngine(pool, events, cfg.Suggestion, log)
	e.Redis = rdb
	return e, nil
}

func newEngine(pool *pgxpool.Pool, events publisher, cfg config.SuggestionConfig, log *slog.Logger) *Engine {
	deps := handlers.Deps{
		Proposals:   proposal.New(pool),
		Projects:    project.New(pool),
		Emails:      email.New(pool),
		Transcripts: transcript.New(pool),
		Contacts:    contact.New(pool),
		Tasks:       task.New(pool),
		EmailLinks:  emaillink.New(pool),
		Settings: handlers.Settings{
			FollowUpDefaultDays:  cfg.FollowUpDefaultDays,
			DeadlineFallbackDays: cfg.DeadlineFallbackDays,
			Currency:             cfg.DefaultCurrency,
		},
		ParseMoney:    normalize.ParseMoney,
		ParseDeadline: normalize.ParseDeadline,
	}

	svc := suggestion.NewService(
		log,
		suggestionrepo.New(pool),
		changelog.New(pool),
		email.New(pool),
		transcript.New(pool),
		handlers.NewDefaultRegistry(log),
		deps,
		events,
		postgres.NewTxManager(pool),
		suggestion.Config{
			DecisionTimeout: cfg.DecisionTimeout,
			MinConfidence:   cfg.MinConfidence,
		},
	)

	return &Engine{Service: svc, Pool: pool}
}

// Close releases the pool and the Redis connection.
func (e *Engine) Close() {
	if e.Redis != nil {
		_ = e.Redis.Close()
	}
	e.Pool.Close()
}
