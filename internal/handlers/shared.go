package handlers

import (
	"errors"
	"net/http"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the caller identity set by the identity middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return primitive.NilObjectID, false
	}

	return userID, true
}

func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondServiceError maps a service error onto the response envelope. The
// fallthrough is a logged 500, so callers never leak raw internals.
func respondServiceError(c *gin.Context, log *logger.Logger, resource string, err error) {
	var validationErrs validators.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, validationErrs.Details())
		return
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		utils.ValidationErrorResponse(c, map[string]string{
			validationErr.Field: validationErr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrSelfRating):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "SELF_RATING", "You cannot rate yourself")
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, models.ErrForbidden):
		utils.ForbiddenResponse(c)
	case errors.Is(err, models.ErrDependency):
		utils.DependencyErrorResponse(c, "A backing service is unavailable, try again later")
	default:
		log.WithError(err).Error("Unhandled service error")
		utils.InternalServerErrorResponse(c)
	}
}
