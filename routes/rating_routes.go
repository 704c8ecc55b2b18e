package routes

import (
	"github.com/grisascutelnic/DrumBun/internal/handlers"
	"github.com/grisascutelnic/DrumBun/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRatingRoutes sets up routes for user ratings
func SetupRatingRoutes(r *gin.RouterGroup, ratingHandler *handlers.RatingHandler) {
	ratings := r.Group("/ratings")
	ratings.Use(middleware.IdentityRequired())
	{
		ratings.POST("", ratingHandler.SubmitRating)
		ratings.DELETE("/:id", ratingHandler.DeleteRating)
	}

	// Public rating reads per user
	users := r.Group("/users")
	{
		users.GET("/:user_id/ratings", ratingHandler.GetUserRatings)
		users.GET("/:user_id/ratings/aggregate", ratingHandler.GetUserAggregate)
	}

	mine := r.Group("/users")
	mine.Use(middleware.IdentityRequired())
	{
		mine.GET("/:user_id/ratings/mine", ratingHandler.GetMyRatingFor)
	}
}
