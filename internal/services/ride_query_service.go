package services

import (
	"context"
	"errors"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideOwner is the slice of the owner's profile shown alongside a listing.
type RideOwner struct {
	ID            primitive.ObjectID `json:"id"`
	FullName      string             `json:"full_name"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	ProfileImage  string             `json:"profile_image"`
	AverageRating float64            `json:"average_rating"`
	TotalRatings  int64              `json:"total_ratings"`
}

// RideDetails joins a ride listing with its owner's display profile.
type RideDetails struct {
	Ride  *models.Ride `json:"ride"`
	Owner *RideOwner   `json:"owner"`
}

// RideQueryService is the read-side composition over rides and user profiles.
// A missing owner degrades to a placeholder; it never fails the whole read.
type RideQueryService interface {
	GetRideDetails(ctx context.Context, rideID primitive.ObjectID) (*RideDetails, error)
	ListActiveRideDetails(ctx context.Context) ([]*RideDetails, error)
	SearchRideDetails(ctx context.Context, criteria *models.RideSearchCriteria) ([]*RideDetails, error)
	ListRecentRideDetails(ctx context.Context) ([]*RideDetails, error)
}

type rideQueryService struct {
	rideService RideService
	userRepo    interfaces.UserRepository
	logger      *logger.Logger
}

func NewRideQueryService(rideService RideService, userRepo interfaces.UserRepository, logger *logger.Logger) RideQueryService {
	return &rideQueryService{
		rideService: rideService,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (s *rideQueryService) GetRideDetails(ctx context.Context, rideID primitive.ObjectID) (*RideDetails, error) {
	ride, err := s.rideService.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	return &RideDetails{
		Ride:  ride,
		Owner: s.resolveOwner(ctx, ride.UserID),
	}, nil
}

func (s *rideQueryService) ListActiveRideDetails(ctx context.Context) ([]*RideDetails, error) {
	rides, err := s.rideService.ListActiveRides(ctx)
	if err != nil {
		return nil, err
	}

	return s.joinOwners(ctx, rides), nil
}

func (s *rideQueryService) SearchRideDetails(ctx context.Context, criteria *models.RideSearchCriteria) ([]*RideDetails, error) {
	rides, err := s.rideService.SearchRides(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return s.joinOwners(ctx, rides), nil
}

func (s *rideQueryService) ListRecentRideDetails(ctx context.Context) ([]*RideDetails, error) {
	rides, err := s.rideService.ListRecentRides(ctx)
	if err != nil {
		return nil, err
	}

	return s.joinOwners(ctx, rides), nil
}

// joinOwners resolves each owner at most once per call.
func (s *rideQueryService) joinOwners(ctx context.Context, rides []*models.Ride) []*RideDetails {
	owners := make(map[primitive.ObjectID]*RideOwner, len(rides))
	details := make([]*RideDetails, 0, len(rides))

	for _, ride := range rides {
		owner, ok := owners[ride.UserID]
		if !ok {
			owner = s.resolveOwner(ctx, ride.UserID)
			owners[ride.UserID] = owner
		}
		details = append(details, &RideDetails{Ride: ride, Owner: owner})
	}

	return details
}

func (s *rideQueryService) resolveOwner(ctx context.Context, userID primitive.ObjectID) *RideOwner {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to resolve ride owner")
		}
		return &RideOwner{
			ID:       primitive.NilObjectID,
			FullName: "Unknown user",
		}
	}

	return &RideOwner{
		ID:            user.ID,
		FullName:      user.FullName(),
		Phone:         user.Phone,
		Email:         user.Email,
		ProfileImage:  user.ProfileImage,
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatings,
	}
}
