package service

import (
	"context"
	"log/slog"

	"marketbot/core/logger"
	"marketbot/internal/model"
	"marketbot/internal/storage"
)

// AccessService answers allow-list questions for incoming updates.
type AccessService struct {
	users storage.UserStore
}

// NewAccessService builds an AccessService over the given user store.
func NewAccessService(users storage.UserStore) *AccessService {
	return &AccessService{users: users}
}

// Allowed reports whether the user may interact with the bot.
// It satisfies the transport-level access guard interface.
func (s *AccessService) Allowed(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		logger.Debug(ctx, "service.access", "check.denied",
			slog.Int64("user_id", userID),
		)
	}
	return ok, nil
}

// Grant puts a user on the allow list.
func (s *AccessService) Grant(ctx context.Context, user model.User) error {
	if err := s.users.Upsert(ctx, user); err != nil {
		return err
	}
	logger.Info(ctx, "service.access", "grant",
		slog.Int64("user_id", user.ID),
		slog.Bool("admin", user.IsAdmin),
	)
	return nil
}
