package services

import (
	"context"
	"fmt"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideService interface {
	// Lifecycle
	CreateRide(ctx context.Context, userID primitive.ObjectID, request *validators.RideCreateRequest) (*models.Ride, error)
	GetRide(ctx context.Context, id primitive.ObjectID) (*models.Ride, error)
	DeleteRide(ctx context.Context, rideID, requesterID primitive.ObjectID) error
	SweepExpired(ctx context.Context) (int64, error)

	// Listing and search
	ListActiveRides(ctx context.Context) ([]*models.Ride, error)
	ListUserRides(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error)
	ListRecentRides(ctx context.Context) ([]*models.Ride, error)
	SearchRides(ctx context.Context, criteria *models.RideSearchCriteria) ([]*models.Ride, error)

	// Search suggestions
	FromLocations(ctx context.Context) ([]string, error)
	ToLocations(ctx context.Context) ([]string, error)
}

type rideService struct {
	rideRepo interfaces.RideRepository
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewRideService(rideRepo interfaces.RideRepository, userRepo interfaces.UserRepository, logger *logger.Logger) RideService {
	return &rideService{
		rideRepo: rideRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *rideService) CreateRide(ctx context.Context, userID primitive.ObjectID, request *validators.RideCreateRequest) (*models.Ride, error) {
	if errs := validators.ValidateRideCreate(request); len(errs) > 0 {
		return nil, errs
	}

	travelDate, err := utils.ParseDate(request.TravelDate)
	if err != nil {
		return nil, models.NewValidationError("travel_date", "Date must be in YYYY-MM-DD format")
	}

	today := utils.StartOfDay(utils.NowInReferenceZone())
	if travelDate.Before(today) {
		return nil, models.NewValidationError("travel_date", "Travel date must not be in the past")
	}

	departureTime, err := utils.CombineDateAndClock(travelDate, request.DepartureTime)
	if err != nil {
		return nil, models.NewValidationError("departure_time", "Time must be in HH:MM format")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("ride owner: %w", err)
	}

	ride := &models.Ride{
		FromLocation:   request.FromLocation,
		ToLocation:     request.ToLocation,
		TravelDate:     travelDate,
		DepartureTime:  departureTime,
		AvailableSeats: request.AvailableSeats,
		Price:          request.Price,
		Description:    request.Description,
		UserID:         userID,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	s.logger.LogRideEvent(ride.ID, "created", map[string]interface{}{
		"user_id":     userID.Hex(),
		"travel_date": request.TravelDate,
		"from":        ride.FromLocation,
		"to":          ride.ToLocation,
	})

	return ride, nil
}

func (s *rideService) GetRide(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	return s.rideRepo.GetByID(ctx, id)
}

// DeleteRide removes a listing. Only the owner may delete; the check runs
// before the delete so a forbidden caller learns nothing beyond existence.
func (s *rideService) DeleteRide(ctx context.Context, rideID, requesterID primitive.ObjectID) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}

	if ride.UserID != requesterID {
		return fmt.Errorf("ride %s is not owned by user %s: %w", rideID.Hex(), requesterID.Hex(), models.ErrForbidden)
	}

	if err := s.rideRepo.Delete(ctx, rideID); err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}

	s.logger.LogRideEvent(rideID, "deleted", map[string]interface{}{
		"user_id": requesterID.Hex(),
	})

	return nil
}

// SweepExpired deactivates every active ride whose departure lies more than
// the grace period in the past. Rides are never deleted by the sweep, so a
// repeated run with no new expiries reports zero.
func (s *rideService) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := utils.NowInReferenceZone().Add(-models.RideExpiryGrace)

	swept, err := s.rideRepo.DeactivateExpired(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired rides: %w", err)
	}

	if swept > 0 {
		s.logger.WithFields(map[string]interface{}{
			"swept":  swept,
			"cutoff": utils.FormatTimeISO(cutoff),
		}).Info("Expired rides deactivated")
	}

	return swept, nil
}

func (s *rideService) ListActiveRides(ctx context.Context) ([]*models.Ride, error) {
	asOf := utils.StartOfDay(utils.NowInReferenceZone())
	return s.rideRepo.ListActive(ctx, asOf)
}

func (s *rideService) ListUserRides(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error) {
	return s.rideRepo.ListByUser(ctx, userID)
}

func (s *rideService) ListRecentRides(ctx context.Context) ([]*models.Ride, error) {
	return s.rideRepo.ListRecent(ctx, utils.RecentRidesLimit)
}

func (s *rideService) SearchRides(ctx context.Context, criteria *models.RideSearchCriteria) ([]*models.Ride, error) {
	if criteria == nil {
		criteria = &models.RideSearchCriteria{}
	}
	if criteria.MinSeats < 0 {
		return nil, models.NewValidationError("min_seats", "Minimum seats must not be negative")
	}
	if criteria.TravelDate != nil {
		normalized := utils.StartOfDay(*criteria.TravelDate)
		criteria.TravelDate = &normalized
	}

	asOf := utils.StartOfDay(utils.NowInReferenceZone())
	return s.rideRepo.Search(ctx, criteria, asOf)
}

func (s *rideService) FromLocations(ctx context.Context) ([]string, error) {
	return s.rideRepo.DistinctFromLocations(ctx)
}

func (s *rideService) ToLocations(ctx context.Context) ([]string, error) {
	return s.rideRepo.DistinctToLocations(ctx)
}
