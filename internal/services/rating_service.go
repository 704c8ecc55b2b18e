package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService interface {
	// AddOrUpdateRating records the rater's score for the rated user, replacing
	// any earlier score from the same rater, and recomputes the rated user's
	// aggregate before returning.
	AddOrUpdateRating(ctx context.Context, raterID, ratedUserID primitive.ObjectID, score int, comment string) (*models.Rating, error)

	DeleteRating(ctx context.Context, ratingID, requesterID primitive.ObjectID) error

	GetUserRatings(ctx context.Context, ratedUserID primitive.ObjectID) ([]*models.Rating, error)
	GetAggregate(ctx context.Context, ratedUserID primitive.ObjectID) (*models.UserRatingAggregate, error)
	HasRated(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (bool, error)
	ExistingRating(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (*models.Rating, error)
}

type ratingService struct {
	ratingRepo interfaces.RatingRepository
	userRepo   interfaces.UserRepository
	logger     *logger.Logger
}

func NewRatingService(ratingRepo interfaces.RatingRepository, userRepo interfaces.UserRepository, logger *logger.Logger) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *ratingService) AddOrUpdateRating(ctx context.Context, raterID, ratedUserID primitive.ObjectID, score int, comment string) (*models.Rating, error) {
	if score < models.MinRatingScore || score > models.MaxRatingScore {
		return nil, models.NewValidationError("score", "Score must be between 1 and 5")
	}
	if raterID == ratedUserID {
		return nil, models.ErrSelfRating
	}

	if _, err := s.userRepo.GetByID(ctx, raterID); err != nil {
		return nil, fmt.Errorf("rater: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, ratedUserID); err != nil {
		return nil, fmt.Errorf("rated user: %w", err)
	}

	saved, err := s.ratingRepo.Upsert(ctx, &models.Rating{
		RaterID:     raterID,
		RatedUserID: ratedUserID,
		Score:       score,
		Comment:     comment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	if err := s.recomputeAggregate(ctx, ratedUserID); err != nil {
		return nil, err
	}

	s.logger.LogUserAction(raterID, "rating_submitted", map[string]interface{}{
		"rated_user_id": ratedUserID.Hex(),
		"score":         score,
	})

	return saved, nil
}

// DeleteRating removes a rating row and recomputes the rated user's aggregate.
// Only the rater who wrote the rating may delete it.
func (s *ratingService) DeleteRating(ctx context.Context, ratingID, requesterID primitive.ObjectID) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}

	if rating.RaterID != requesterID {
		return fmt.Errorf("rating %s was not written by user %s: %w", ratingID.Hex(), requesterID.Hex(), models.ErrForbidden)
	}

	if err := s.ratingRepo.Delete(ctx, ratingID); err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	if err := s.recomputeAggregate(ctx, rating.RatedUserID); err != nil {
		return err
	}

	s.logger.LogUserAction(requesterID, "rating_deleted", map[string]interface{}{
		"rated_user_id": rating.RatedUserID.Hex(),
	})

	return nil
}

func (s *ratingService) GetUserRatings(ctx context.Context, ratedUserID primitive.ObjectID) ([]*models.Rating, error) {
	if _, err := s.userRepo.GetByID(ctx, ratedUserID); err != nil {
		return nil, fmt.Errorf("rated user: %w", err)
	}

	return s.ratingRepo.GetByRatedUser(ctx, ratedUserID)
}

// GetAggregate returns the rated user's average score rounded to one decimal
// place. A user with no ratings gets a zero average and zero count.
func (s *ratingService) GetAggregate(ctx context.Context, ratedUserID primitive.ObjectID) (*models.UserRatingAggregate, error) {
	aggregate, err := s.ratingRepo.AggregateForUser(ctx, ratedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	aggregate.AverageScore = roundToOneDecimal(aggregate.AverageScore)

	return aggregate, nil
}

func (s *ratingService) HasRated(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (bool, error) {
	return s.ratingRepo.ExistsByPair(ctx, raterID, ratedUserID)
}

// ExistingRating returns the rater's current rating of the rated user, or nil
// when no rating exists.
func (s *ratingService) ExistingRating(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByPair(ctx, raterID, ratedUserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return rating, nil
}

// recomputeAggregate re-reads the full rating set for the user and writes the
// rounded result onto the profile record. Called after every rating write.
func (s *ratingService) recomputeAggregate(ctx context.Context, ratedUserID primitive.ObjectID) error {
	aggregate, err := s.ratingRepo.AggregateForUser(ctx, ratedUserID)
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	average := roundToOneDecimal(aggregate.AverageScore)

	if err := s.userRepo.UpdateRatingStats(ctx, ratedUserID, average, aggregate.TotalCount); err != nil {
		return fmt.Errorf("failed to update rating stats: %w", err)
	}

	return nil
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
