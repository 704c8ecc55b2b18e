package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const aggregateCacheTTL = 15 * time.Minute

type ratingRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRatingRepository(db *mongo.Database, cache services.CacheService) interfaces.RatingRepository {
	return &ratingRepository{
		collection: db.Collection("ratings"),
		cache:      cache,
	}
}

// Upsert relies on the unique (rater_id, rated_user_id) index: the filtered
// upsert updates the existing pair row in place, and concurrent inserts for
// the same pair collapse onto a single document.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	filter := bson.M{
		"rater_id":      rating.RaterID,
		"rated_user_id": rating.RatedUserID,
	}
	update := bson.M{
		"$set": bson.M{
			"score":   rating.Score,
			"comment": rating.Comment,
		},
		"$setOnInsert": bson.M{
			"_id":           primitive.NewObjectID(),
			"rater_id":      rating.RaterID,
			"rated_user_id": rating.RatedUserID,
			"created_at":    time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Rating
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	r.invalidateAggregateCache(ctx, rating.RatedUserID)

	return &saved, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rating %s: %w", id.Hex(), models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Get the rating first so the aggregate cache can be invalidated.
	rating, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("rating %s: %w", id.Hex(), models.ErrNotFound)
	}

	r.invalidateAggregateCache(ctx, rating.RatedUserID)

	return nil
}

func (r *ratingRepository) GetByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (*models.Rating, error) {
	filter := bson.M{
		"rater_id":      raterID,
		"rated_user_id": ratedUserID,
	}

	var rating models.Rating
	err := r.collection.FindOne(ctx, filter).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rating for pair (%s, %s): %w", raterID.Hex(), ratedUserID.Hex(), models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by pair: %w", err)
	}

	return &rating, nil
}

func (r *ratingRepository) ExistsByPair(ctx context.Context, raterID, ratedUserID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"rater_id":      raterID,
		"rated_user_id": ratedUserID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to count ratings by pair: %w", err)
	}

	return count > 0, nil
}

func (r *ratingRepository) GetByRatedUser(ctx context.Context, ratedUserID primitive.ObjectID) ([]*models.Rating, error) {
	filter := bson.M{"rated_user_id": ratedUserID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*models.Rating
	for cursor.Next(ctx) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, nil
}

func (r *ratingRepository) AggregateForUser(ctx context.Context, ratedUserID primitive.ObjectID) (*models.UserRatingAggregate, error) {
	cacheKey := aggregateCacheKey(ratedUserID)
	if r.cache != nil {
		var cached models.UserRatingAggregate
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rated_user_id": ratedUserID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"average_score": bson.M{"$avg": "$score"},
			"total_count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	aggregate := &models.UserRatingAggregate{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(aggregate); err != nil {
			return nil, fmt.Errorf("failed to decode rating aggregate: %w", err)
		}
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, aggregate, aggregateCacheTTL)
	}

	return aggregate, nil
}

func (r *ratingRepository) invalidateAggregateCache(ctx context.Context, ratedUserID primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, aggregateCacheKey(ratedUserID))
	}
}

func aggregateCacheKey(ratedUserID primitive.ObjectID) string {
	return fmt.Sprintf("user_rating_agg_%s", ratedUserID.Hex())
}
