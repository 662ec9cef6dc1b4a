package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"marketbot/core/logger"
	"log/slog"
)

const defaultConnectTimeout = 5 * time.Second

// Connect opens the Mongo client, configures the pool, and verifies connectivity.
func Connect(cfg Config) (*mongo.Database, error) {
	timeout := defaultConnectTimeout
	if cfg.ConnectTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.STORE.Error("store connect failed",
			slog.String("event", "store.connect"),
			slog.String("uri", RedactURI(cfg.URI)),
			slog.String("db", cfg.Database),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if pingErr := client.Ping(ctx, readpref.Primary()); pingErr != nil {
		_ = client.Disconnect(context.Background())
		logger.STORE.Error("store ping failed",
			slog.String("event", "store.ping"),
			slog.String("uri", RedactURI(cfg.URI)),
			slog.String("db", cfg.Database),
			slog.String("err", pingErr.Error()),
		)
		return nil, fmt.Errorf("mongo ping: %w", pingErr)
	}
	took := time.Since(start)

	// Final INFO line for connection
	logger.STORE.Info("store connected",
		slog.String("event", "store.connect"),
		slog.String("uri", RedactURI(cfg.URI)),
		slog.String("db", cfg.Database),
		slog.Int64("pool_max", int64(cfg.MaxPoolSize)),
		slog.Duration("duration", logger.RoundMS(took)),
	)

	return client.Database(cfg.Database), nil
}

// WaitForMongo pings the store until it is ready or timeout is reached.
func WaitForMongo(uri string, timeout time.Duration) error {
	start := time.Now()
	var lastErr error
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
			_ = client.Disconnect(context.Background())
			if err == nil {
				cancel()
				return nil
			}
		}
		cancel()
		lastErr = err
		if time.Since(start) > timeout {
			return fmt.Errorf("timeout reached waiting for store: %w", lastErr)
		}
		time.Sleep(2 * time.Second)
	}
}

// RedactURI strips credentials from a connection URI for safe logging.
func RedactURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		// fall back to cutting everything up to '@'
		if at := strings.LastIndex(uri, "@"); at >= 0 {
			return "mongodb://<redacted>@" + uri[at+1:]
		}
		return uri
	}
	if parsed.User != nil {
		parsed.User = url.User("<redacted>")
	}
	return parsed.String()
}
