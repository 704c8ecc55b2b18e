package routes

import (
	"github.com/grisascutelnic/DrumBun/internal/handlers"
	"github.com/grisascutelnic/DrumBun/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up routes for user profiles
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/:user_id", userHandler.GetProfile)
	}

	me := r.Group("/users/me")
	me.Use(middleware.IdentityRequired())
	{
		me.POST("/profile-image", userHandler.UploadProfileImage)
	}
}
