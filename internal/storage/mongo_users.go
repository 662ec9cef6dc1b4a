package storage

import (
	"context"
	"fmt"

	"marketbot/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type mongoUserStore struct {
	col *mongo.Collection
}

// NewUserStore returns a Mongo-backed UserStore over the "users" collection.
func NewUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{col: db.Collection(usersCollection)}
}

func (s *mongoUserStore) Exists(ctx context.Context, userID int64) (bool, error) {
	err := s.col.FindOne(ctx, bson.M{"id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("users: lookup %d: %w", userID, err)
	}
	return true, nil
}

func (s *mongoUserStore) Upsert(ctx context.Context, user model.User) error {
	filter := bson.M{"id": user.ID}
	update := bson.M{"$set": user}
	opts := options.Update().SetUpsert(true)
	if _, err := s.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("users: upsert %d: %w", user.ID, err)
	}
	return nil
}

func (s *mongoUserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("users: count: %w", err)
	}
	return n, nil
}
