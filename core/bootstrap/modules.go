package bootstrap

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Seeder loads reference data into the document store after migrations.
type Seeder interface {
	Seed(ctx context.Context, db *mongo.Database) error
}

// SeederFunc adapts a bare function to the Seeder interface.
type SeederFunc func(ctx context.Context, db *mongo.Database) error

// Seed executes the underlying function.
func (f SeederFunc) Seed(ctx context.Context, db *mongo.Database) error {
	return f(ctx, db)
}

// RunSeeders executes seeders in order, stopping at the first failure.
func RunSeeders(ctx context.Context, db *mongo.Database, seeders []Seeder) error {
	for i, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Seed(ctx, db); err != nil {
			return fmt.Errorf("bootstrap: seeder %d failed: %w", i, err)
		}
	}
	return nil
}
