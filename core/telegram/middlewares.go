package telegram

import (
	"strings"
	"time"

	coreconfig "marketbot/core/config"
	"marketbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// ChainOptions configures the shared middleware chain.
type ChainOptions struct {
	// Guard gates every update behind an allow list when set.
	Guard          middleware.Guard
	OnAccessDenied tele.HandlerFunc
	OnLimited      tele.HandlerFunc
}

// DefaultMiddlewares builds the shared middleware chain for bots.
// Order matters: the access guard runs before anything that could reply.
func DefaultMiddlewares(cfg *coreconfig.Config, opts ChainOptions) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
	}

	if opts.Guard != nil {
		mws = append(mws, Middleware{
			Name: "access",
			Use: middleware.AccessMiddleware(middleware.AccessOptions{
				Guard:    opts.Guard,
				OnReject: opts.OnAccessDenied,
			}),
		})
	}

	if cfg != nil {
		interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond
		if interval > 0 {
			ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
			for _, t := range cfg.RateLimit.ExcludeUpdates {
				ex[strings.ToLower(t)] = struct{}{}
			}
			limitOpts := middleware.RateLimitOptions{
				Interval: interval,
				Exclude:  ex,
			}
			if opts.OnLimited != nil {
				limitOpts.OnLimited = opts.OnLimited
			}
			mws = append(mws, Middleware{
				Name: "rate_limit",
				Use:  middleware.RateLimitMiddleware(limitOpts),
			})
		}
	}

	mws = append(mws,
		Middleware{Name: "logger", Use: middleware.LoggerMiddleware},
		Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	)

	return mws
}
