package domain

import (
	"fmt"
	"time"
)

// RatingKind separates the two independent rating records a goal can carry.
type RatingKind string

const (
	RatingSelf    RatingKind = "SELF"
	RatingManager RatingKind = "MANAGER"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a 1-5 score attached to a goal. At most one record exists per
// (goal, kind) pair; submissions are upserts.
type Rating struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	GoalID    string     `json:"goalId" bson:"goal_id"`
	Kind      RatingKind `json:"kind" bson:"kind"`
	Score     int        `json:"score" bson:"score"`
	Comments  string     `json:"comments,omitempty" bson:"comments,omitempty"`
	AuthorID  string     `json:"authorId" bson:"author_id"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updated_at"`
}

// ValidScore reports whether score is within the allowed 1..5 range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// AverageScore returns the mean score formatted to one decimal place.
// An empty input yields "0.0" so consumers never divide by zero.
func AverageScore(ratings []Rating) string {
	if len(ratings) == 0 {
		return "0.0"
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(ratings)))
}
