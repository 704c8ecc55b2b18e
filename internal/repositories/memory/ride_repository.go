// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces, used in tests and when running without MongoDB.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type rideRepository struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Ride
}

func NewRideRepository() interfaces.RideRepository {
	return &rideRepository{
		items: make(map[primitive.ObjectID]models.Ride),
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	ride.IsActive = true

	r.items[ride.ID] = *ride

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("ride %s: %w", id.Hex(), models.ErrNotFound)
	}

	return &ride, nil
}

func (r *rideRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("ride %s: %w", id.Hex(), models.ErrNotFound)
	}

	delete(r.items, id)

	return nil
}

func (r *rideRepository) ListActive(ctx context.Context, asOf time.Time) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rides := r.collect(func(ride *models.Ride) bool {
		return ride.IsActive && !ride.TravelDate.Before(asOf)
	})
	sortByTravelDate(rides)

	return rides, nil
}

func (r *rideRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rides := r.collect(func(ride *models.Ride) bool {
		return ride.UserID == userID
	})
	sort.Slice(rides, func(i, j int) bool {
		return rides[i].CreatedAt.After(rides[j].CreatedAt)
	})

	return rides, nil
}

func (r *rideRepository) ListRecent(ctx context.Context, limit int) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rides := r.collect(func(ride *models.Ride) bool {
		return ride.IsActive
	})
	sort.Slice(rides, func(i, j int) bool {
		return rides[i].CreatedAt.After(rides[j].CreatedAt)
	})

	if len(rides) > limit {
		rides = rides[:limit]
	}

	return rides, nil
}

func (r *rideRepository) Search(ctx context.Context, criteria *models.RideSearchCriteria, asOf time.Time) ([]*models.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dateFloor := asOf
	if criteria.TravelDate != nil && criteria.TravelDate.After(dateFloor) {
		dateFloor = *criteria.TravelDate
	}

	from := strings.ToLower(criteria.FromLocation)
	to := strings.ToLower(criteria.ToLocation)

	rides := r.collect(func(ride *models.Ride) bool {
		if !ride.IsActive || ride.TravelDate.Before(dateFloor) {
			return false
		}
		if from != "" && !strings.Contains(strings.ToLower(ride.FromLocation), from) {
			return false
		}
		if to != "" && !strings.Contains(strings.ToLower(ride.ToLocation), to) {
			return false
		}
		if criteria.MinSeats > 0 && ride.AvailableSeats < criteria.MinSeats {
			return false
		}
		return true
	})
	sortByTravelDate(rides)

	return rides, nil
}

func (r *rideRepository) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int64
	for id, ride := range r.items {
		if ride.IsActive && ride.DepartureTime.Before(cutoff) {
			ride.IsActive = false
			r.items[id] = ride
			swept++
		}
	}

	return swept, nil
}

func (r *rideRepository) DistinctFromLocations(ctx context.Context) ([]string, error) {
	return r.distinctLocations(func(ride *models.Ride) string { return ride.FromLocation }), nil
}

func (r *rideRepository) DistinctToLocations(ctx context.Context) ([]string, error) {
	return r.distinctLocations(func(ride *models.Ride) string { return ride.ToLocation }), nil
}

func (r *rideRepository) distinctLocations(field func(*models.Ride) string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, ride := range r.items {
		if !ride.IsActive {
			continue
		}
		if value := field(&ride); value != "" {
			seen[value] = struct{}{}
		}
	}

	locations := make([]string, 0, len(seen))
	for value := range seen {
		locations = append(locations, value)
	}
	sort.Strings(locations)

	return locations
}

// collect must be called with at least a read lock held.
func (r *rideRepository) collect(match func(*models.Ride) bool) []*models.Ride {
	rides := make([]*models.Ride, 0, len(r.items))
	for _, ride := range r.items {
		ride := ride
		if match(&ride) {
			rides = append(rides, &ride)
		}
	}
	return rides
}

func sortByTravelDate(rides []*models.Ride) {
	sort.Slice(rides, func(i, j int) bool {
		if rides[i].TravelDate.Equal(rides[j].TravelDate) {
			return rides[i].DepartureTime.Before(rides[j].DepartureTime)
		}
		return rides[i].TravelDate.Before(rides[j].TravelDate)
	})
}
