package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ratingPair struct {
	raterID     primitive.ObjectID
	ratedUserID primitive.ObjectID
}

type ratingRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Rating
	pairs map[ratingPair]primitive.ObjectID
}

func NewRatingRepository() interfaces.RatingRepository {
	return &ratingRepository{
		items: make(map[primitive.ObjectID]models.Rating),
		pairs: make(map[ratingPair]primitive.ObjectID),
	}
}

// Upsert serializes the pair check-then-act under the write lock, so two
// concurrent raters of the same user can never produce two rows.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := ratingPair{raterID: rating.RaterID, ratedUserID: rating.RatedUserID}

	if id, ok := r.pairs[pair]; ok {
		existing := r.items[id]
		existing.Score = rating.Score
		existing.Comment = rating.Comment
		r.items[id] = existing
		return &existing, nil
	}

	saved := *rating
	saved.ID = primitive.NewObjectID()
	saved.CreatedAt = time.Now()
	r.items[saved.ID] = saved
	r.pairs[pair] = saved.ID

	return &saved, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("rating %s: %w", id.Hex(), models.ErrNotFound)
	}

	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.items[id]
	if !ok {
		return fmt.Errorf("rating %s: %w", id.Hex(), models.ErrNotFound)
	}

	delete(r.items, id)
	delete(r.pairs, ratingPair{raterID: rating.RaterID, ratedUserID: rating.RatedUserID})

	return nil
}

func (r *ratingRepository) GetByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (*models.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.pairs[ratingPair{raterID: raterID, ratedUserID: ratedUserID}]
	if !ok {
		return nil, fmt.Errorf("rating for pair (%s, %s): %w", raterID.Hex(), ratedUserID.Hex(), models.ErrNotFound)
	}

	rating := r.items[id]
	return &rating, nil
}

func (r *ratingRepository) ExistsByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.pairs[ratingPair{raterID: raterID, ratedUserID: ratedUserID}]
	return ok, nil
}

func (r *ratingRepository) GetByRatedUser(ctx context.Context, ratedUserID primitive.ObjectID) ([]*models.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ratings := make([]*models.Rating, 0)
	for _, rating := range r.items {
		rating := rating
		if rating.RatedUserID == ratedUserID {
			ratings = append(ratings, &rating)
		}
	}
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})

	return ratings, nil
}

func (r *ratingRepository) AggregateForUser(ctx context.Context, ratedUserID primitive.ObjectID) (*models.UserRatingAggregate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int64
	for _, rating := range r.items {
		if rating.RatedUserID == ratedUserID {
			sum += int64(rating.Score)
			count++
		}
	}

	aggregate := &models.UserRatingAggregate{TotalCount: count}
	if count > 0 {
		aggregate.AverageScore = float64(sum) / float64(count)
	}

	return aggregate, nil
}
