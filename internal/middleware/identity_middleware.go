package middleware

import (
	"github.com/grisascutelnic/DrumBun/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserIDHeader carries the caller identity established by the identity
// collaborator in front of this service.
const UserIDHeader = "X-User-ID"

// IdentityRequired resolves the caller's user ID from the identity header and
// stores it in the request context. Requests without a valid ID are rejected;
// this service trusts the header and never authenticates users itself.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// IdentityOptional stores the caller's user ID when the header is present and
// valid, and lets the request through either way.
func IdentityOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(UserIDHeader); raw != "" {
			if userID, err := primitive.ObjectIDFromHex(raw); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}
