package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/orderline/go-order-system/internal/app/config"
	"github.com/orderline/go-order-system/internal/app/storage/api/model"
	"github.com/orderline/go-order-system/internal/app/storage/postgres"
	"github.com/orderline/go-order-system/internal/app/storage/sqlite"
)

const (
	pingRetryBase    = 500 * time.Millisecond
	pingRetryAttempt = 5
)

func InitStorage(ctx context.Context, config config.Config) (model.Storage, error) {
	if len(config.DBConnect) == 0 {
		return nil, fmt.Errorf("empty database config")
	}

	var (
		store model.Storage
		err   error
	)

	switch config.StorageDriver {
	case "postgres":
		store, err = postgres.NewPostgresStorage(config.DBConnect)
	case "sqlite":
		store, err = sqlite.NewSQLiteStorage(config.DBConnect)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", config.StorageDriver)
	}
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(pingRetryAttempt, retry.NewExponential(pingRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("storage is not reachable: %w", err)
	}

	return store, nil
}
