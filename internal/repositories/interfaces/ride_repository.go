package interfaces

import (
	"context"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing. ListActive returns active rides with TravelDate >= asOf ordered
	// by TravelDate ascending; ListByUser returns every ride the user owns,
	// newest first.
	ListActive(ctx context.Context, asOf time.Time) ([]*models.Ride, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Ride, error)

	// Search narrows the active set; results are always a subset of
	// ListActive(asOf) in the same order.
	Search(ctx context.Context, criteria *models.RideSearchCriteria, asOf time.Time) ([]*models.Ride, error)

	// Lifecycle. DeactivateExpired flips IsActive off for active rides whose
	// departure is before cutoff and reports how many changed.
	DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error)

	// Search suggestions over the active set, sorted and deduplicated.
	DistinctFromLocations(ctx context.Context) ([]string, error)
	DistinctToLocations(ctx context.Context) ([]string, error)
}
