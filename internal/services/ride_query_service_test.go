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

func TestRideDetailsOwnerJoin(t *testing.T) {
	ctx := context.Background()

	rideRepo := memory.NewRideRepository()
	userRepo := memory.NewUserRepository()
	log := logger.NewNop()
	rideService := services.NewRideService(rideRepo, userRepo, log)
	queryService := services.NewRideQueryService(rideService, userRepo, log)

	owner := &models.User{
		FirstName:    "Ana",
		LastName:     "Popescu",
		Email:        "ana@example.com",
		Phone:        "+37360000000",
		ProfileImage: "https://cdn.example.com/ana.jpg",
	}
	require.NoError(t, userRepo.Create(ctx, owner))
	require.NoError(t, userRepo.UpdateRatingStats(ctx, owner.ID, 4.5, 12))

	ride := seedRide(t, rideRepo, owner.ID, "Chisinau", "Balti", daysFromToday(1), "10:00", 3)

	t.Run("joins the owner's display profile", func(t *testing.T) {
		details, err := queryService.GetRideDetails(ctx, ride.ID)
		require.NoError(t, err)
		assert.Equal(t, ride.ID, details.Ride.ID)
		assert.Equal(t, owner.ID, details.Owner.ID)
		assert.Equal(t, "Ana Popescu", details.Owner.FullName)
		assert.Equal(t, "+37360000000", details.Owner.Phone)
		assert.Equal(t, "ana@example.com", details.Owner.Email)
		assert.Equal(t, "https://cdn.example.com/ana.jpg", details.Owner.ProfileImage)
		assert.Equal(t, 4.5, details.Owner.AverageRating)
		assert.Equal(t, int64(12), details.Owner.TotalRatings)
	})

	t.Run("missing owner degrades to a placeholder", func(t *testing.T) {
		orphan := seedRide(t, rideRepo, primitive.NewObjectID(), "Orhei", "Soroca", daysFromToday(1), "12:00", 2)

		details, err := queryService.GetRideDetails(ctx, orphan.ID)
		require.NoError(t, err)
		assert.Equal(t, primitive.NilObjectID, details.Owner.ID)
		assert.Equal(t, "Unknown user", details.Owner.FullName)
		assert.Empty(t, details.Owner.ProfileImage)
	})

	t.Run("listings carry owners for every ride", func(t *testing.T) {
		details, err := queryService.ListActiveRideDetails(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, details)
		for _, d := range details {
			require.NotNil(t, d.Owner)
			assert.NotEmpty(t, d.Owner.FullName)
		}
	})

	t.Run("missing ride reports not found", func(t *testing.T) {
		_, err := queryService.GetRideDetails(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
