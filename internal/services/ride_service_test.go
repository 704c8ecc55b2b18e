package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/internal/repositories/memory"
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRideFixture(t *testing.T) (services.RideService, interfaces.RideRepository, primitive.ObjectID) {
	t.Helper()

	rideRepo := memory.NewRideRepository()
	userRepo := memory.NewUserRepository()
	service := services.NewRideService(rideRepo, userRepo, logger.NewNop())

	owner := &models.User{
		FirstName: "Ana",
		LastName:  "Popescu",
		Email:     "ana@example.com",
		Phone:     "+37360000000",
	}
	require.NoError(t, userRepo.Create(context.Background(), owner))

	return service, rideRepo, owner.ID
}

// seedRide inserts a ride directly, bypassing service-level date checks, so
// tests can stage rides in the past.
func seedRide(t *testing.T, repo interfaces.RideRepository, ownerID primitive.ObjectID, from, to string, travelDate time.Time, departureClock string, seats int) *models.Ride {
	t.Helper()

	departure, err := utils.CombineDateAndClock(travelDate, departureClock)
	require.NoError(t, err)

	ride := &models.Ride{
		FromLocation:   from,
		ToLocation:     to,
		TravelDate:     travelDate,
		DepartureTime:  departure,
		AvailableSeats: seats,
		Price:          50,
		UserID:         ownerID,
	}
	require.NoError(t, repo.Create(context.Background(), ride))
	return ride
}

func daysFromToday(n int) time.Time {
	return utils.StartOfDay(utils.NowInReferenceZone()).AddDate(0, 0, n)
}

func TestCreateRide(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active listing", func(t *testing.T) {
		service, _, owner := newRideFixture(t)
		tomorrow := daysFromToday(1)

		ride, err := service.CreateRide(ctx, owner, &validators.RideCreateRequest{
			FromLocation:   "Chisinau",
			ToLocation:     "Balti",
			TravelDate:     tomorrow.Format(utils.DateLayout),
			DepartureTime:  "14:30",
			AvailableSeats: 3,
			Price:          120,
			Description:    "Non-smoking",
		})
		require.NoError(t, err)
		assert.False(t, ride.ID.IsZero())
		assert.True(t, ride.IsActive)
		assert.True(t, ride.TravelDate.Equal(tomorrow))
		assert.Equal(t, 14, ride.DepartureTime.Hour())
		assert.Equal(t, 30, ride.DepartureTime.Minute())
		assert.Equal(t, owner, ride.UserID)

		// Departure always falls on the travel date.
		assert.True(t, utils.StartOfDay(ride.DepartureTime).Equal(ride.TravelDate))
	})

	t.Run("accepts today as travel date", func(t *testing.T) {
		service, _, owner := newRideFixture(t)

		_, err := service.CreateRide(ctx, owner, &validators.RideCreateRequest{
			FromLocation:  "Chisinau",
			ToLocation:    "Orhei",
			TravelDate:    daysFromToday(0).Format(utils.DateLayout),
			DepartureTime: "23:59",
		})
		require.NoError(t, err)
	})

	t.Run("rejects past travel dates", func(t *testing.T) {
		service, _, owner := newRideFixture(t)

		_, err := service.CreateRide(ctx, owner, &validators.RideCreateRequest{
			FromLocation:  "Chisinau",
			ToLocation:    "Balti",
			TravelDate:    daysFromToday(-1).Format(utils.DateLayout),
			DepartureTime: "10:00",
		})
		assert.True(t, models.IsValidation(err))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		service, _, owner := newRideFixture(t)

		cases := []validators.RideCreateRequest{
			{FromLocation: "", ToLocation: "Balti", TravelDate: "2030-01-01", DepartureTime: "10:00"},
			{FromLocation: "Chisinau", ToLocation: "Balti", TravelDate: "01-01-2030", DepartureTime: "10:00"},
			{FromLocation: "Chisinau", ToLocation: "Balti", TravelDate: "2030-01-01", DepartureTime: "25:00"},
			{FromLocation: "Chisinau", ToLocation: "Balti", TravelDate: "2030-01-01", DepartureTime: "10:00", AvailableSeats: -1},
		}
		for i := range cases {
			_, err := service.CreateRide(ctx, owner, &cases[i])
			assert.Error(t, err, "case %d", i)
		}
	})

	t.Run("rejects unknown owners", func(t *testing.T) {
		service, _, _ := newRideFixture(t)

		_, err := service.CreateRide(ctx, primitive.NewObjectID(), &validators.RideCreateRequest{
			FromLocation:  "Chisinau",
			ToLocation:    "Balti",
			TravelDate:    daysFromToday(1).Format(utils.DateLayout),
			DepartureTime: "10:00",
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestDeleteRide(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		service, repo, owner := newRideFixture(t)
		ride := seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(1), "10:00", 3)

		require.NoError(t, service.DeleteRide(ctx, ride.ID, owner))

		_, err := service.GetRide(ctx, ride.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("non-owner is forbidden and the ride survives", func(t *testing.T) {
		service, repo, owner := newRideFixture(t)
		ride := seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(1), "10:00", 3)

		err := service.DeleteRide(ctx, ride.ID, primitive.NewObjectID())
		assert.ErrorIs(t, err, models.ErrForbidden)

		_, err = service.GetRide(ctx, ride.ID)
		require.NoError(t, err)
	})

	t.Run("missing ride reports not found", func(t *testing.T) {
		service, _, owner := newRideFixture(t)
		err := service.DeleteRide(ctx, primitive.NewObjectID(), owner)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestSweepExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates rides past the grace period", func(t *testing.T) {
		service, repo, owner := newRideFixture(t)

		expired := seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(-3), "10:00", 3)
		recent := seedRide(t, repo, owner, "Chisinau", "Orhei", daysFromToday(0), "00:30", 2)
		future := seedRide(t, repo, owner, "Chisinau", "Cahul", daysFromToday(2), "10:00", 1)

		swept, err := service.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), swept)

		// Deactivated, not deleted.
		got, err := service.GetRide(ctx, expired.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		got, err = service.GetRide(ctx, recent.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)

		got, err = service.GetRide(ctx, future.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	})

	t.Run("sweep is idempotent", func(t *testing.T) {
		service, repo, owner := newRideFixture(t)
		seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(-3), "10:00", 3)

		swept, err := service.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), swept)

		swept, err = service.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), swept)
	})

	t.Run("empty store sweeps nothing", func(t *testing.T) {
		service, _, _ := newRideFixture(t)

		swept, err := service.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), swept)
	})
}

func TestListActiveRides(t *testing.T) {
	ctx := context.Background()
	service, repo, owner := newRideFixture(t)

	past := seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(-1), "10:00", 3)
	today := seedRide(t, repo, owner, "Chisinau", "Orhei", daysFromToday(0), "18:00", 2)
	later := seedRide(t, repo, owner, "Chisinau", "Cahul", daysFromToday(3), "08:00", 1)
	soon := seedRide(t, repo, owner, "Balti", "Soroca", daysFromToday(1), "09:00", 4)

	rides, err := service.ListActiveRides(ctx)
	require.NoError(t, err)

	ids := make([]primitive.ObjectID, 0, len(rides))
	for _, ride := range rides {
		ids = append(ids, ride.ID)
	}

	// Past travel dates are excluded, the rest are ordered by travel date.
	assert.Equal(t, []primitive.ObjectID{today.ID, soon.ID, later.ID}, ids)
	assert.NotContains(t, ids, past.ID)
}

func TestSearchRides(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (services.RideService, map[string]*models.Ride) {
		service, repo, owner := newRideFixture(t)
		rides := map[string]*models.Ride{
			"balti1":  seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(1), "10:00", 3),
			"balti2":  seedRide(t, repo, owner, "Chisinau Centru", "Balti", daysFromToday(2), "09:00", 1),
			"cahul":   seedRide(t, repo, owner, "Chisinau", "Cahul", daysFromToday(1), "12:00", 2),
			"expired": seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(-2), "10:00", 3),
		}
		return service, rides
	}

	t.Run("blank criteria equals the active listing", func(t *testing.T) {
		service, _ := setup(t)

		active, err := service.ListActiveRides(ctx)
		require.NoError(t, err)

		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{})
		require.NoError(t, err)

		require.Equal(t, len(active), len(found))
		for i := range active {
			assert.Equal(t, active[i].ID, found[i].ID)
		}
	})

	t.Run("destination filter is a case-insensitive substring", func(t *testing.T) {
		service, rides := setup(t)

		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{ToLocation: "balti"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, rides["balti1"].ID, found[0].ID)
		assert.Equal(t, rides["balti2"].ID, found[1].ID)
	})

	t.Run("origin filter matches partial names", func(t *testing.T) {
		service, rides := setup(t)

		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{FromLocation: "centru"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, rides["balti2"].ID, found[0].ID)
	})

	t.Run("travel date keeps rides on or after that day", func(t *testing.T) {
		service, rides := setup(t)

		date := daysFromToday(2)
		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{TravelDate: &date})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, rides["balti2"].ID, found[0].ID)
	})

	t.Run("minimum seats excludes smaller rides", func(t *testing.T) {
		service, rides := setup(t)

		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{MinSeats: 2})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, rides["balti1"].ID, found[0].ID)
		assert.Equal(t, rides["cahul"].ID, found[1].ID)
	})

	t.Run("combined filters intersect", func(t *testing.T) {
		service, rides := setup(t)

		found, err := service.SearchRides(ctx, &models.RideSearchCriteria{
			ToLocation: "Balti",
			MinSeats:   2,
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, rides["balti1"].ID, found[0].ID)
	})

	t.Run("negative min seats fails validation", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.SearchRides(ctx, &models.RideSearchCriteria{MinSeats: -1})
		assert.True(t, models.IsValidation(err))
	})
}

func TestListRecentRides(t *testing.T) {
	ctx := context.Background()
	service, repo, owner := newRideFixture(t)

	for i := 0; i < 8; i++ {
		seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(1+i), "10:00", 2)
	}

	rides, err := service.ListRecentRides(ctx)
	require.NoError(t, err)
	assert.Len(t, rides, utils.RecentRidesLimit)
}

func TestLocationSuggestions(t *testing.T) {
	ctx := context.Background()
	service, repo, owner := newRideFixture(t)

	seedRide(t, repo, owner, "Chisinau", "Balti", daysFromToday(1), "10:00", 2)
	seedRide(t, repo, owner, "Chisinau", "Cahul", daysFromToday(1), "11:00", 2)
	seedRide(t, repo, owner, "Orhei", "Balti", daysFromToday(2), "09:00", 2)

	from, err := service.FromLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chisinau", "Orhei"}, from)

	to, err := service.ToLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Balti", "Cahul"}, to)
}
