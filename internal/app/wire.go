package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seenimoa/vndrate/internal/config"
	"github.com/seenimoa/vndrate/internal/datasource"
	"github.com/seenimoa/vndrate/internal/store"
)

// NewStore builds the configured store. The returned close function
// releases any connection it holds.
func NewStore(ctx context.Context, cfg config.CacheConfig) (store.Store, func() error, error) {
	switch cfg.Backend {
	case "", "file":
		return store.NewFileStore(cfg.Path), func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store.NewRedisStore(client, cfg.Redis.Key), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// NewFetcher builds the configured quote scraper.
func NewFetcher(cfg config.SourceConfig) (datasource.Fetcher, error) {
	switch cfg.Mode {
	case "", "http":
		return datasource.NewGoogleFinance(cfg.URL, cfg.Selector, datasource.NewHTTPClient(cfg.Timeout)), nil
	case "browser":
		return datasource.NewBrowser(cfg.URL, cfg.Selector), nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Mode)
	}
}
