package interfaces

import (
	"context"

	"github.com/grisascutelnic/DrumBun/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingRepository interface {
	// Upsert inserts the rating for its (rater, rated user) pair or updates
	// the score and comment of the existing row in place. The returned rating
	// is the stored row. Concurrent upserts for the same pair never produce
	// two rows.
	Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error)

	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Pair lookups
	GetByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (*models.Rating, error)
	ExistsByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (bool, error)

	// GetByRatedUser returns all ratings received by a user, newest first.
	GetByRatedUser(ctx context.Context, ratedUserID primitive.ObjectID) ([]*models.Rating, error)

	// AggregateForUser recomputes the average and count from the full rating
	// set currently in the store. Average is not rounded here.
	AggregateForUser(ctx context.Context, ratedUserID primitive.ObjectID) (*models.UserRatingAggregate, error)
}
