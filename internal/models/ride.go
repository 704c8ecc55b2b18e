package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideExpiryGrace is how long after departure a ride stays visible before the
// sweeper deactivates it.
const RideExpiryGrace = 24 * time.Hour

type Ride struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FromLocation   string             `json:"from_location" bson:"from_location" validate:"required,max=255"`
	ToLocation     string             `json:"to_location" bson:"to_location" validate:"required,max=255"`
	TravelDate     time.Time          `json:"travel_date" bson:"travel_date"`       // midnight in the reference zone
	DepartureTime  time.Time          `json:"departure_time" bson:"departure_time"` // travel date + wall-clock departure
	AvailableSeats int                `json:"available_seats" bson:"available_seats" validate:"min=0"`
	Price          float64            `json:"price" bson:"price" validate:"min=0"`
	Description    string             `json:"description" bson:"description" validate:"max=1000"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
}

// RideSearchCriteria narrows the active ride set. Empty strings and nil values
// impose no constraint. TravelDate matches rides departing on or after that day.
type RideSearchCriteria struct {
	FromLocation string     `json:"from_location" form:"from_location"`
	ToLocation   string     `json:"to_location" form:"to_location"`
	TravelDate   *time.Time `json:"travel_date" form:"-"`
	MinSeats     int        `json:"min_seats" form:"min_seats"`
}
