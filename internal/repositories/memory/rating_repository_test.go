package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/grisascutelnic/DrumBun/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRatingUpsertConcurrentPair(t *testing.T) {
	ctx := context.Background()
	repo := NewRatingRepository()

	rater := primitive.NewObjectID()
	rated := primitive.NewObjectID()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := repo.Upsert(ctx, &models.Rating{
				RaterID:     rater,
				RatedUserID: rated,
				Score:       score%5 + 1,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// All 50 writes collapse onto a single row.
	ratings, err := repo.GetByRatedUser(ctx, rated)
	require.NoError(t, err)
	assert.Len(t, ratings, 1)

	aggregate, err := repo.AggregateForUser(ctx, rated)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aggregate.TotalCount)
}

func TestRatingUpsertDistinctPairs(t *testing.T) {
	ctx := context.Background()
	repo := NewRatingRepository()

	rated := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		_, err := repo.Upsert(ctx, &models.Rating{
			RaterID:     primitive.NewObjectID(),
			RatedUserID: rated,
			Score:       5,
		})
		require.NoError(t, err)
	}

	// Opposite direction is a separate pair.
	rater := primitive.NewObjectID()
	_, err := repo.Upsert(ctx, &models.Rating{
		RaterID:     rated,
		RatedUserID: rater,
		Score:       3,
	})
	require.NoError(t, err)

	ratings, err := repo.GetByRatedUser(ctx, rated)
	require.NoError(t, err)
	assert.Len(t, ratings, 3)

	aggregate, err := repo.AggregateForUser(ctx, rater)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aggregate.TotalCount)
	assert.Equal(t, 3.0, aggregate.AverageScore)
}
