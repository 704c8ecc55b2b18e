package interfaces

import (
	"context"

	"github.com/grisascutelnic/DrumBun/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// UpdateRatingStats writes the recomputed aggregate onto the profile record.
	UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, total int64) error

	// UpdateProfileImage stores the blob-store reference verbatim.
	UpdateProfileImage(ctx context.Context, id primitive.ObjectID, imageRef string) error
}
