package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is one user's score of another. At most one row exists per ordered
// (rater_id, rated_user_id) pair; a repeated rating updates the row in place.
type Rating struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RaterID     primitive.ObjectID `json:"rater_id" bson:"rater_id" validate:"required"`
	RatedUserID primitive.ObjectID `json:"rated_user_id" bson:"rated_user_id" validate:"required"`
	Score       int                `json:"score" bson:"score" validate:"required,rating_value"`
	Comment     string             `json:"comment" bson:"comment" validate:"max=500"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// UserRatingAggregate is derived from the rating rows and recomputed in full
// on every change. AverageScore is rounded to one decimal place.
type UserRatingAggregate struct {
	AverageScore float64 `json:"average_score" bson:"average_score"`
	TotalCount   int64   `json:"total_count" bson:"total_count"`
}
