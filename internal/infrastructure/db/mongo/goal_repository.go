package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

const collectionGoals = "goals"

type GoalRepository struct {
	col *mongo.Collection
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{col: db.Collection(collectionGoals)}
}

// Create inserts a new goal document.
func (r *GoalRepository) Create(ctx context.Context, g *domain.Goal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, g)
	return err
}

// FindByID retrieves a goal by id.
func (r *GoalRepository) FindByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var g domain.Goal
	err := r.col.FindOne(ctx, bson.M{"_id": goalID}).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns a page of goals matching the filter plus the total match count.
func (r *GoalRepository) List(ctx context.Context, filter ports.ListGoalsFilter) ([]*domain.Goal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.EmployeeIDs != nil {
		query["employee_id"] = bson.M{"$in": filter.EmployeeIDs}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var goals []*domain.Goal
	if err := cur.All(ctx, &goals); err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

// FindAll returns every goal document. Used by the statistics aggregator.
func (r *GoalRepository) FindAll(ctx context.Context) ([]*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var goals []*domain.Goal
	if err := cur.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// UpdateDetails persists the editable fields and bumps updated_at.
func (r *GoalRepository) UpdateDetails(ctx context.Context, g *domain.Goal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": g.ID}, bson.M{
		"$set": bson.M{
			"title":       g.Title,
			"description": g.Description,
			"category":    g.Category,
			"due_date":    g.DueDate,
			"updated_at":  g.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// ApplyTransition atomically moves the goal from upd.From to upd.To and
// appends the status-history entry. The filter includes the expected current
// status, so a concurrent transition that got there first makes this a no-op
// and the caller gets ErrInvalidTransition.
func (r *GoalRepository) ApplyTransition(ctx context.Context, goalID string, upd ports.TransitionUpdate) (*domain.Goal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     upd.To,
		"updated_at": upd.Timestamp,
	}
	if upd.ManagerComments != nil {
		set["manager_comments"] = *upd.ManagerComments
	}
	if upd.ReviewedAt != nil {
		set["reviewed_at"] = *upd.ReviewedAt
	}
	if upd.DeletedAt != nil {
		set["deleted_at"] = *upd.DeletedAt
		set["deleted_by_id"] = upd.DeletedByID
	}

	entry := domain.StatusHistoryEntry{
		Status:    upd.To,
		Timestamp: upd.Timestamp,
		ActorID:   upd.ActorID,
	}
	if upd.ManagerComments != nil {
		entry.Notes = *upd.ManagerComments
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g domain.Goal
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": goalID, "status": upd.From},
		bson.M{
			"$set":  set,
			"$push": bson.M{"status_history": entry},
		},
		opts,
	).Decode(&g)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the goal vanished or its status moved under us.
			if _, findErr := r.FindByID(ctx, goalID); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrInvalidTransition
		}
		return nil, err
	}
	return &g, nil
}

// EnsureIndexes creates the indexes backing list scoping and filters.
func (r *GoalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
