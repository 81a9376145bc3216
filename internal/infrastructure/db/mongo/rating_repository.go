package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/perfhub/performance-system/internal/core/domain"
)

const collectionRatings = "ratings"

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(collectionRatings)}
}

// Upsert writes the rating keyed by (goal_id, kind), creating the document on
// first submission and replacing score/comments on resubmission.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.Rating
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"goal_id": rating.GoalID, "kind": rating.Kind},
		bson.M{
			"$set": bson.M{
				"score":      rating.Score,
				"comments":   rating.Comments,
				"author_id":  rating.AuthorID,
				"updated_at": rating.UpdatedAt,
			},
			"$setOnInsert": bson.M{"_id": rating.ID},
		},
		opts,
	).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListByGoal returns the ratings attached to a goal (at most one per kind).
func (r *RatingRepository) ListByGoal(ctx context.Context, goalID string) ([]domain.Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"goal_id": goalID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ratings []domain.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

// SelfRatedGoalIDs reports which of the given goals carry a self-rating.
func (r *RatingRepository) SelfRatedGoalIDs(ctx context.Context, goalIDs []string) (map[string]bool, error) {
	rated := make(map[string]bool, len(goalIDs))
	if len(goalIDs) == 0 {
		return rated, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{
		"goal_id": bson.M{"$in": goalIDs},
		"kind":    domain.RatingSelf,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ratings []domain.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, err
	}
	for _, rt := range ratings {
		rated[rt.GoalID] = true
	}
	return rated, nil
}

// EnsureIndexes enforces one rating per (goal, kind) at the storage level.
func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "goal_id", Value: 1}, {Key: "kind", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
