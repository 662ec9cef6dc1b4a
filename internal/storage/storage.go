package storage

import (
	"context"
	"errors"

	"marketbot/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// UserStore manages the allow list.
type UserStore interface {
	// Exists reports whether the user is on the allow list.
	Exists(ctx context.Context, userID int64) (bool, error)
	// Upsert inserts the user or updates the existing record.
	Upsert(ctx context.Context, user model.User) error
	Count(ctx context.Context) (int64, error)
}

// ProductStore manages tracked products.
type ProductStore interface {
	Insert(ctx context.Context, p model.Product) error
	// All returns every tracked product across all users.
	All(ctx context.Context) ([]model.Product, error)
	// Delete removes a product by id. Returns ErrNotFound when no record matched.
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
