package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	fromLocationsCacheKey = "ride_locations_from"
	toLocationsCacheKey   = "ride_locations_to"
	locationsCacheTTL     = 5 * time.Minute
)

type rideRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRideRepository(db *mongo.Database, cache services.CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection: db.Collection("rides"),
		cache:      cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	ride.IsActive = true

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	r.invalidateLocationCache(ctx)

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("ride %s: %w", id.Hex(), models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	return &ride, nil
}

func (r *rideRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("ride %s: %w", id.Hex(), models.ErrNotFound)
	}

	r.invalidateLocationCache(ctx)

	return nil
}

func (r *rideRepository) ListActive(ctx context.Context, asOf time.Time) ([]*models.Ride, error) {
	filter := bson.M{
		"is_active":   true,
		"travel_date": bson.M{"$gte": asOf},
	}

	opts := options.Find().SetSort(bson.D{{Key: "travel_date", Value: 1}, {Key: "departure_time", Value: 1}})
	return r.findRides(ctx, filter, opts)
}

func (r *rideRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Ride, error) {
	filter := bson.M{"user_id": userID}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findRides(ctx, filter, opts)
}

func (r *rideRepository) ListRecent(ctx context.Context, limit int) ([]*models.Ride, error) {
	filter := bson.M{"is_active": true}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.findRides(ctx, filter, opts)
}

func (r *rideRepository) Search(ctx context.Context, criteria *models.RideSearchCriteria, asOf time.Time) ([]*models.Ride, error) {
	dateFloor := asOf
	if criteria.TravelDate != nil && criteria.TravelDate.After(dateFloor) {
		dateFloor = *criteria.TravelDate
	}

	filter := bson.M{
		"is_active":   true,
		"travel_date": bson.M{"$gte": dateFloor},
	}

	if criteria.FromLocation != "" {
		filter["from_location"] = bson.M{"$regex": regexp.QuoteMeta(criteria.FromLocation), "$options": "i"}
	}
	if criteria.ToLocation != "" {
		filter["to_location"] = bson.M{"$regex": regexp.QuoteMeta(criteria.ToLocation), "$options": "i"}
	}
	if criteria.MinSeats > 0 {
		filter["available_seats"] = bson.M{"$gte": criteria.MinSeats}
	}

	opts := options.Find().SetSort(bson.D{{Key: "travel_date", Value: 1}, {Key: "departure_time", Value: 1}})
	return r.findRides(ctx, filter, opts)
}

func (r *rideRepository) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"is_active":      true,
		"departure_time": bson.M{"$lt": cutoff},
	}

	result, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired rides: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.invalidateLocationCache(ctx)
	}

	return result.ModifiedCount, nil
}

func (r *rideRepository) DistinctFromLocations(ctx context.Context) ([]string, error) {
	return r.distinctLocations(ctx, "from_location", fromLocationsCacheKey)
}

func (r *rideRepository) DistinctToLocations(ctx context.Context) ([]string, error) {
	return r.distinctLocations(ctx, "to_location", toLocationsCacheKey)
}

func (r *rideRepository) distinctLocations(ctx context.Context, field, cacheKey string) ([]string, error) {
	if r.cache != nil {
		var cached []string
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	values, err := r.collection.Distinct(ctx, field, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct %s values: %w", field, err)
	}

	locations := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			locations = append(locations, s)
		}
	}
	sort.Strings(locations)

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, locations, locationsCacheTTL)
	}

	return locations, nil
}

func (r *rideRepository) findRides(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Ride, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			return nil, fmt.Errorf("failed to decode ride: %w", err)
		}
		rides = append(rides, &ride)
	}

	return rides, nil
}

func (r *rideRepository) invalidateLocationCache(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, fromLocationsCacheKey, toLocationsCacheKey)
	}
}
