package app

import (
	"context"
	"errors"
	"fmt"
	httpapp "github.com/14kear/pollstore/internal/app/http"
	"github.com/14kear/pollstore/internal/config"
	"github.com/14kear/pollstore/internal/events/amqp"
	"github.com/14kear/pollstore/internal/handlers"
	"github.com/14kear/pollstore/internal/middleware"
	"github.com/14kear/pollstore/internal/services/polls"
	"github.com/14kear/pollstore/internal/storage/memory"
	"github.com/14kear/pollstore/internal/storage/postgres"
	"github.com/14kear/pollstore/internal/storage/redis"
	"log/slog"
)

type persister interface {
	polls.Persister
	Close() error
}

type App struct {
	HTTPServer *httpapp.App
	Polls      *polls.Store

	storage   persister
	publisher *amqp.Publisher
}

// NewApp открывает хранилище из конфига, поднимает из него хранилище опросов
// и собирает HTTP-сервер.
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.NewApp"

	storage, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("storage opened", slog.String("type", cfg.Storage.Type))

	var opts []polls.Option
	var publisher *amqp.Publisher
	if cfg.AMQP.URL != "" {
		publisher, err = amqp.Dial(log, cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, polls.WithPublisher(publisher))
	}

	store, err := polls.New(ctx, log, storage, opts...)
	if err != nil {
		if publisher != nil {
			publisher.Close()
		}
		storage.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authMiddleware := middleware.NewAuthMiddleware(log, cfg.Auth.Secret)
	pollHandler := handlers.NewPollHandler(store)

	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, cfg.CORS.AllowedOrigins, pollHandler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Polls:      store,
		storage:    storage,
		publisher:  publisher,
	}, nil
}

func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if err := a.HTTPServer.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	a.Polls.Close()
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.storage.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (persister, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		return postgres.New(ctx, cfg.Driver, cfg.DSN)
	case config.StorageRedis:
		return redis.New(ctx, cfg.RedisAddr, cfg.RedisDB)
	case config.StorageMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
