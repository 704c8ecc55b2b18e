package routes

import (
	"github.com/grisascutelnic/DrumBun/internal/handlers"
	"github.com/grisascutelnic/DrumBun/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes sets up routes for ride listings and search
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler) {
	// Public listing and search routes
	rides := r.Group("/rides")
	{
		rides.GET("", rideHandler.ListActiveRides)
		rides.GET("/search", rideHandler.SearchRides)
		rides.GET("/recent", rideHandler.ListRecentRides)
		rides.GET("/locations/from", rideHandler.FromLocationSuggestions)
		rides.GET("/locations/to", rideHandler.ToLocationSuggestions)
		rides.GET("/user/:user_id", rideHandler.ListRidesByUser)
		rides.GET("/:id", rideHandler.GetRide)
	}

	// Routes acting on behalf of the caller
	owned := r.Group("/rides")
	owned.Use(middleware.IdentityRequired())
	{
		owned.POST("", rideHandler.CreateRide)
		owned.DELETE("/:id", rideHandler.DeleteRide)
	}

	my := r.Group("/my/rides")
	my.Use(middleware.IdentityRequired())
	{
		my.GET("", rideHandler.ListMyRides)
	}

	// Admin route to trigger the expiry sweep on demand
	admin := r.Group("/admin/rides")
	{
		admin.POST("/sweep", rideHandler.SweepRides)
	}
}
