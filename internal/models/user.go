package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the profile record supplied by the identity collaborator. The core
// never authenticates users; it resolves IDs handed to it and writes the
// rating aggregate back onto this record.
type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName     string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName      string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Phone         string             `json:"phone" bson:"phone" validate:"required"`
	ProfileImage  string             `json:"profile_image" bson:"profile_image"`
	AverageRating float64            `json:"average_rating" bson:"average_rating"`
	TotalRatings  int64              `json:"total_ratings" bson:"total_ratings"`
	IsActive      bool               `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
