package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{
		items: make(map[primitive.ObjectID]models.User),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.IsActive = true

	r.items[user.ID] = *user

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), models.ErrNotFound)
	}

	return &user, nil
}

func (r *userRepository) UpdateRatingStats(ctx context.Context, id primitive.ObjectID, average float64, total int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), models.ErrNotFound)
	}

	user.AverageRating = average
	user.TotalRatings = total
	r.items[id] = user

	return nil
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, id primitive.ObjectID, imageRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.items[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id.Hex(), models.ErrNotFound)
	}

	user.ProfileImage = imageRef
	r.items[id] = user

	return nil
}
