package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates all collection indexes. Call once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewGoalRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("goal indexes: %w", err)
	}
	if err := NewRatingRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("rating indexes: %w", err)
	}
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}
