package handlers

import (
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingHandler struct {
	ratingService services.RatingService
	logger        *logger.Logger
}

func NewRatingHandler(ratingService services.RatingService, logger *logger.Logger) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		logger:        logger,
	}
}

// SubmitRating records or replaces the caller's rating of another user.
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	raterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.RatingSubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRatingSubmit(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	ratedUserID, err := primitive.ObjectIDFromHex(request.RatedUserID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid rated user ID")
		return
	}

	rating, err := h.ratingService.AddOrUpdateRating(c.Request.Context(), raterID, ratedUserID, request.Score, request.Comment)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	utils.SuccessResponse(c, "Rating saved successfully", rating)
}

// DeleteRating removes a rating the caller wrote.
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	raterID, ok := currentUserID(c)
	if !ok {
		return
	}

	ratingID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), ratingID, raterID); err != nil {
		respondServiceError(c, h.logger, "Rating", err)
		return
	}

	utils.NoContentResponse(c)
}

// GetUserRatings lists all ratings a user has received, newest first.
func (h *RatingHandler) GetUserRatings(c *gin.Context) {
	ratedUserID, ok := parseObjectIDParam(c, "user_id")
	if !ok {
		return
	}

	ratings, err := h.ratingService.GetUserRatings(c.Request.Context(), ratedUserID)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	params := utils.GetPaginationParams(c)
	total := int64(len(ratings))

	start := params.GetSkip()
	if start > len(ratings) {
		start = len(ratings)
	}
	end := start + params.GetLimit()
	if end > len(ratings) {
		end = len(ratings)
	}
	page := ratings[start:end]

	utils.SuccessResponseWithMeta(c, "Ratings retrieved successfully", page, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(page),
	})
}

// GetUserAggregate returns a user's average score and rating count.
func (h *RatingHandler) GetUserAggregate(c *gin.Context) {
	ratedUserID, ok := parseObjectIDParam(c, "user_id")
	if !ok {
		return
	}

	aggregate, err := h.ratingService.GetAggregate(c.Request.Context(), ratedUserID)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	utils.SuccessResponse(c, "Rating aggregate retrieved successfully", aggregate)
}

// GetMyRatingFor returns the caller's current rating of a user, if any.
func (h *RatingHandler) GetMyRatingFor(c *gin.Context) {
	raterID, ok := currentUserID(c)
	if !ok {
		return
	}

	ratedUserID, ok := parseObjectIDParam(c, "user_id")
	if !ok {
		return
	}

	rating, err := h.ratingService.ExistingRating(c.Request.Context(), raterID, ratedUserID)
	if err != nil {
		respondServiceError(c, h.logger, "Rating", err)
		return
	}

	utils.SuccessResponse(c, "Rating retrieved successfully", gin.H{
		"has_rated": rating != nil,
		"rating":    rating,
	})
}
