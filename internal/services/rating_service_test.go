package services_test

import (
	"context"
	"testing"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/memory"
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRatingFixture(t *testing.T) (services.RatingService, func(name string) primitive.ObjectID, func(id primitive.ObjectID) *models.User) {
	t.Helper()

	userRepo := memory.NewUserRepository()
	ratingRepo := memory.NewRatingRepository()
	service := services.NewRatingService(ratingRepo, userRepo, logger.NewNop())

	newUser := func(name string) primitive.ObjectID {
		user := &models.User{
			FirstName: name,
			LastName:  "Test",
			Email:     name + "@example.com",
			Phone:     "+37360000000",
		}
		require.NoError(t, userRepo.Create(context.Background(), user))
		return user.ID
	}

	getUser := func(id primitive.ObjectID) *models.User {
		user, err := userRepo.GetByID(context.Background(), id)
		require.NoError(t, err)
		return user
	}

	return service, newUser, getUser
}

func TestAddOrUpdateRating(t *testing.T) {
	ctx := context.Background()

	t.Run("records a new rating and updates the aggregate", func(t *testing.T) {
		service, newUser, getUser := newRatingFixture(t)
		rater := newUser("ana")
		rated := newUser("bogdan")

		rating, err := service.AddOrUpdateRating(ctx, rater, rated, 4, "smooth ride")
		require.NoError(t, err)
		assert.Equal(t, 4, rating.Score)
		assert.Equal(t, rater, rating.RaterID)
		assert.False(t, rating.ID.IsZero())

		user := getUser(rated)
		assert.Equal(t, 4.0, user.AverageRating)
		assert.Equal(t, int64(1), user.TotalRatings)
	})

	t.Run("repeat rating replaces the previous score", func(t *testing.T) {
		service, newUser, getUser := newRatingFixture(t)
		rater := newUser("ana")
		rated := newUser("bogdan")

		first, err := service.AddOrUpdateRating(ctx, rater, rated, 2, "late")
		require.NoError(t, err)

		second, err := service.AddOrUpdateRating(ctx, rater, rated, 5, "much better")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Score)
		assert.Equal(t, "much better", second.Comment)

		ratings, err := service.GetUserRatings(ctx, rated)
		require.NoError(t, err)
		require.Len(t, ratings, 1)
		assert.Equal(t, 5, ratings[0].Score)

		user := getUser(rated)
		assert.Equal(t, 5.0, user.AverageRating)
		assert.Equal(t, int64(1), user.TotalRatings)
	})

	t.Run("averages across raters round to one decimal", func(t *testing.T) {
		service, newUser, getUser := newRatingFixture(t)
		rated := newUser("bogdan")

		_, err := service.AddOrUpdateRating(ctx, newUser("ana"), rated, 4, "")
		require.NoError(t, err)
		_, err = service.AddOrUpdateRating(ctx, newUser("chiril"), rated, 5, "")
		require.NoError(t, err)

		user := getUser(rated)
		assert.Equal(t, 4.5, user.AverageRating)
		assert.Equal(t, int64(2), user.TotalRatings)

		_, err = service.AddOrUpdateRating(ctx, newUser("diana"), rated, 4, "")
		require.NoError(t, err)

		// 13/3 = 4.333...
		user = getUser(rated)
		assert.Equal(t, 4.3, user.AverageRating)
		assert.Equal(t, int64(3), user.TotalRatings)
	})

	t.Run("rejects self-rating", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		user := newUser("ana")

		_, err := service.AddOrUpdateRating(ctx, user, user, 5, "")
		assert.ErrorIs(t, err, models.ErrSelfRating)
	})

	t.Run("rejects out-of-range scores", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		rater := newUser("ana")
		rated := newUser("bogdan")

		for _, score := range []int{0, 6, -1} {
			_, err := service.AddOrUpdateRating(ctx, rater, rated, score, "")
			assert.True(t, models.IsValidation(err), "score %d should fail validation", score)
		}
	})

	t.Run("rejects unknown users", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		rater := newUser("ana")

		_, err := service.AddOrUpdateRating(ctx, rater, primitive.NewObjectID(), 5, "")
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = service.AddOrUpdateRating(ctx, primitive.NewObjectID(), rater, 5, "")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDeleteRating(t *testing.T) {
	ctx := context.Background()

	t.Run("only the rater may delete", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		rater := newUser("ana")
		rated := newUser("bogdan")
		other := newUser("chiril")

		rating, err := service.AddOrUpdateRating(ctx, rater, rated, 3, "")
		require.NoError(t, err)

		err = service.DeleteRating(ctx, rating.ID, other)
		assert.ErrorIs(t, err, models.ErrForbidden)

		err = service.DeleteRating(ctx, rating.ID, rater)
		require.NoError(t, err)
	})

	t.Run("delete recomputes the aggregate", func(t *testing.T) {
		service, newUser, getUser := newRatingFixture(t)
		rated := newUser("bogdan")
		ana := newUser("ana")

		rating, err := service.AddOrUpdateRating(ctx, ana, rated, 2, "")
		require.NoError(t, err)
		_, err = service.AddOrUpdateRating(ctx, newUser("chiril"), rated, 5, "")
		require.NoError(t, err)

		require.NoError(t, service.DeleteRating(ctx, rating.ID, ana))

		user := getUser(rated)
		assert.Equal(t, 5.0, user.AverageRating)
		assert.Equal(t, int64(1), user.TotalRatings)
	})

	t.Run("deleting the last rating zeroes the aggregate", func(t *testing.T) {
		service, newUser, getUser := newRatingFixture(t)
		rated := newUser("bogdan")
		ana := newUser("ana")

		rating, err := service.AddOrUpdateRating(ctx, ana, rated, 4, "")
		require.NoError(t, err)
		require.NoError(t, service.DeleteRating(ctx, rating.ID, ana))

		user := getUser(rated)
		assert.Equal(t, 0.0, user.AverageRating)
		assert.Equal(t, int64(0), user.TotalRatings)
	})

	t.Run("missing rating reports not found", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		err := service.DeleteRating(ctx, primitive.NewObjectID(), newUser("ana"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestGetAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("user with no ratings gets a zero aggregate", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		rated := newUser("bogdan")

		aggregate, err := service.GetAggregate(ctx, rated)
		require.NoError(t, err)
		assert.Equal(t, 0.0, aggregate.AverageScore)
		assert.Equal(t, int64(0), aggregate.TotalCount)
	})

	t.Run("aggregate is rounded to one decimal", func(t *testing.T) {
		service, newUser, _ := newRatingFixture(t)
		rated := newUser("bogdan")

		_, err := service.AddOrUpdateRating(ctx, newUser("ana"), rated, 4, "")
		require.NoError(t, err)
		_, err = service.AddOrUpdateRating(ctx, newUser("chiril"), rated, 3, "")
		require.NoError(t, err)
		_, err = service.AddOrUpdateRating(ctx, newUser("diana"), rated, 3, "")
		require.NoError(t, err)

		// 10/3 = 3.333...
		aggregate, err := service.GetAggregate(ctx, rated)
		require.NoError(t, err)
		assert.Equal(t, 3.3, aggregate.AverageScore)
		assert.Equal(t, int64(3), aggregate.TotalCount)
	})
}

func TestHasRatedAndExistingRating(t *testing.T) {
	ctx := context.Background()
	service, newUser, _ := newRatingFixture(t)
	rater := newUser("ana")
	rated := newUser("bogdan")

	hasRated, err := service.HasRated(ctx, rater, rated)
	require.NoError(t, err)
	assert.False(t, hasRated)

	existing, err := service.ExistingRating(ctx, rater, rated)
	require.NoError(t, err)
	assert.Nil(t, existing)

	_, err = service.AddOrUpdateRating(ctx, rater, rated, 4, "ok")
	require.NoError(t, err)

	hasRated, err = service.HasRated(ctx, rater, rated)
	require.NoError(t, err)
	assert.True(t, hasRated)

	existing, err = service.ExistingRating(ctx, rater, rated)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, 4, existing.Score)

	// Direction matters: the rated user has not rated back.
	hasRated, err = service.HasRated(ctx, rated, rater)
	require.NoError(t, err)
	assert.False(t, hasRated)
}
