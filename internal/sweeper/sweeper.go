package sweeper

import (
	"context"
	"log/slog"
	"time"

	"marketbot/core/logger"
	"marketbot/internal/metrics"
	"marketbot/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultInterval is the pause between sweep passes.
const DefaultInterval = 10 * time.Second

// ProductSource lists and removes tracked products.
type ProductSource interface {
	All(ctx context.Context) ([]model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Notifier delivers an expiry alert to the product's owner.
type Notifier interface {
	NotifyExpired(ctx context.Context, p model.Product) error
}

// Sweeper periodically scans for expired products, alerts their owners and
// removes the records. A failed alert stops the loop for good: the error is
// surfaced and no further passes run until the process restarts.
type Sweeper struct {
	products ProductSource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

// Option tweaks sweeper construction.
type Option func(*Sweeper)

// WithInterval overrides the pause between passes.
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) { s.interval = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) { s.now = now }
}

// New builds a sweeper over the given source and notifier.
func New(products ProductSource, notifier Notifier, opts ...Option) *Sweeper {
	s := &Sweeper{
		products: products,
		notifier: notifier,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes sweep passes until ctx is cancelled or an alert fails.
func (s *Sweeper) Run(ctx context.Context) error {
	metrics.SweeperAlive.Set(1)
	defer metrics.SweeperAlive.Set(0)

	logger.Info(ctx, "sweeper", "start",
		slog.Duration("interval", s.interval),
	)

	// First pass right away, then one per interval.
	if err := s.RunOnce(ctx); err != nil {
		logger.Error(ctx, "sweeper", "halted",
			slog.String("err", err.Error()),
		)
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "sweeper", "stop")
			return nil
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				logger.Error(ctx, "sweeper", "halted",
					slog.String("err", err.Error()),
				)
				return err
			}
		}
	}
}

// RunOnce performs a single sweep pass. It returns an error only when an
// alert could not be delivered; the expired record is kept in that case so
// the next pass (if any) retries it.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	sweepID := uuid.NewString()
	start := s.now()

	items, err := s.products.All(ctx)
	if err != nil {
		// Storage hiccups do not kill the loop.
		logger.Warn(ctx, "sweeper", "scan.fail",
			slog.String("sweep_id", sweepID),
			slog.String("err", err.Error()),
		)
		return nil
	}

	expired, deleted := 0, 0
	for i := range items {
		p := &items[i]
		if p.Expiry == nil || !p.Expiry.Due(start) {
			continue
		}
		expired++

		if err := s.notifier.NotifyExpired(ctx, *p); err != nil {
			logger.Error(ctx, "sweeper", "notify.fail",
				slog.String("sweep_id", sweepID),
				slog.Int64("user_id", p.UserID),
				slog.String("product", logger.SanitizeLimit(p.DisplayName(), 128)),
				slog.String("err", err.Error()),
			)
			return err
		}
		metrics.SweepNotifications.Inc()

		if err := s.products.Delete(ctx, p.ID); err != nil {
			logger.Warn(ctx, "sweeper", "delete.fail",
				slog.String("sweep_id", sweepID),
				slog.String("err", err.Error()),
			)
			continue
		}
		deleted++
		metrics.SweepDeletes.Inc()
	}

	metrics.SweepRuns.Inc()
	if expired > 0 {
		logger.Info(ctx, "sweeper", "pass",
			slog.String("sweep_id", sweepID),
			slog.Int("scanned", len(items)),
			slog.Int("expired", expired),
			slog.Int("deleted", deleted),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
	} else if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "sweeper", "pass",
			slog.String("sweep_id", sweepID),
			slog.Int("scanned", len(items)),
		)
	}
	return nil
}
