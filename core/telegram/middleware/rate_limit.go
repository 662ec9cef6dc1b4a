package middleware

import (
	"log/slog"
	"sync"
	"time"

	"marketbot/core/logger"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval  time.Duration
	Burst     int
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware returns a middleware that throttles updates per user
// using a token bucket with one token refilled every Interval.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	var (
		mu       sync.Mutex
		limiters = make(map[int64]*userLimiter)
		lastGC   = time.Now()
	)

	limiterFor := func(userID int64) *rate.Limiter {
		now := time.Now()
		mu.Lock()
		defer mu.Unlock()

		// Drop limiters idle for longer than an hour.
		if now.Sub(lastGC) > time.Hour {
			for id, ul := range limiters {
				if now.Sub(ul.lastSeen) > time.Hour {
					delete(limiters, id)
				}
			}
			lastGC = now
		}

		ul, ok := limiters[userID]
		if !ok {
			ul = &userLimiter{limiter: rate.NewLimiter(rate.Every(opts.Interval), burst)}
			limiters[userID] = ul
		}
		ul.lastSeen = now
		return ul.limiter
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}

			// Determine update kind and apply configured exclusions
			upd := c.Update()
			kind := "other"
			switch {
			case upd.Callback != nil:
				kind = "callback"
			case upd.Message != nil:
				kind = "message"
			case upd.Query != nil:
				kind = "inline_query"
			}
			if _, skip := opts.Exclude[kind]; skip {
				return next(c)
			}

			if !limiterFor(user.ID).Allow() {
				attrs := []slog.Attr{
					slog.String("event", "tg.rate_limit"),
					slog.Int64("user_id", user.ID),
				}
				if chat := c.Chat(); chat != nil {
					attrs = append(attrs, slog.Int64("chat_id", chat.ID))
				}
				logger.TG.LogAttrs(logger.Background(), slog.LevelWarn, "rate limit", attrs...)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}

			return next(c)
		}
	}
}
