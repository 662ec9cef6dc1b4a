package middleware

import (
	"context"
	"log/slog"

	"marketbot/core/logger"
	tghelpers "marketbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Guard decides whether a user may interact with the bot at all.
type Guard interface {
	Allowed(ctx context.Context, userID int64) (bool, error)
}

// AccessOptions configures the allow-list middleware.
type AccessOptions struct {
	Guard Guard
	// OnReject runs when a user is not on the allow list. The update is
	// dropped either way.
	OnReject tele.HandlerFunc
}

// AccessMiddleware gates every update behind the allow list. Updates without
// a sender are dropped. A guard failure counts as a rejection.
func AccessMiddleware(opts AccessOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return nil
			}
			if opts.Guard == nil {
				return next(c)
			}

			ctx := tghelpers.BuildContext(c)
			ok, err := opts.Guard.Allowed(ctx, user.ID)
			if err != nil {
				logger.Error(ctx, "tg", "access.check.fail",
					slog.Int64("user_id", user.ID),
					slog.String("err", err.Error()),
				)
				ok = false
			}
			if !ok {
				logger.Warn(ctx, "tg", "access.denied",
					slog.Int64("user_id", user.ID),
				)
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	AdminID  int64
	OnReject tele.HandlerFunc
}

// AdminOnlyMiddleware ensures that only the admin user can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.AdminID != 0 && c.Sender().ID != opts.AdminID {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
