package storage

import (
	"context"
	"fmt"

	"marketbot/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const productsCollection = "products"

type mongoProductStore struct {
	col *mongo.Collection
}

// NewProductStore returns a Mongo-backed ProductStore over the "products" collection.
func NewProductStore(db *mongo.Database) ProductStore {
	return &mongoProductStore{col: db.Collection(productsCollection)}
}

func (s *mongoProductStore) Insert(ctx context.Context, p model.Product) error {
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	return nil
}

func (s *mongoProductStore) All(ctx context.Context) ([]model.Product, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}
	defer cur.Close(ctx)

	var out []model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return out, nil
}

func (s *mongoProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoProductStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("products: count: %w", err)
	}
	return n, nil
}
