package handlers

import (
	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RideHandler struct {
	rideService  services.RideService
	queryService services.RideQueryService
	logger       *logger.Logger
}

func NewRideHandler(rideService services.RideService, queryService services.RideQueryService, logger *logger.Logger) *RideHandler {
	return &RideHandler{
		rideService:  rideService,
		queryService: queryService,
		logger:       logger,
	}
}

// CreateRide publishes a new ride listing owned by the caller.
func (h *RideHandler) CreateRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request validators.RideCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), userID, &request)
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.CreatedResponse(c, "Ride created successfully", ride)
}

// GetRide returns a listing with its owner's display profile.
func (h *RideHandler) GetRide(c *gin.Context) {
	rideID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.queryService.GetRideDetails(c.Request.Context(), rideID)
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponse(c, "Ride retrieved successfully", details)
}

// ListActiveRides returns all active listings with travel dates from today on.
func (h *RideHandler) ListActiveRides(c *gin.Context) {
	details, err := h.queryService.ListActiveRideDetails(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", details, &utils.Meta{
		Count: len(details),
	})
}

// SearchRides filters active listings by route, date and seats. All filters
// are optional; a blank search equals the active listing.
func (h *RideHandler) SearchRides(c *gin.Context) {
	var criteria models.RideSearchCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		utils.BadRequestResponse(c, "Invalid search parameters: "+err.Error())
		return
	}

	if raw := c.Query("travel_date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			utils.BadRequestResponse(c, "travel_date must be in YYYY-MM-DD format")
			return
		}
		criteria.TravelDate = &date
	}

	details, err := h.queryService.SearchRideDetails(c.Request.Context(), &criteria)
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", details, &utils.Meta{
		Count: len(details),
	})
}

// ListRecentRides returns the newest active listings for the landing page.
func (h *RideHandler) ListRecentRides(c *gin.Context) {
	details, err := h.queryService.ListRecentRideDetails(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponse(c, "Recent rides retrieved successfully", details)
}

// ListMyRides returns every listing the caller owns, active or not.
func (h *RideHandler) ListMyRides(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rides, err := h.rideService.ListUserRides(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{
		Count: len(rides),
	})
}

// ListRidesByUser returns every listing owned by the given user.
func (h *RideHandler) ListRidesByUser(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "user_id")
	if !ok {
		return
	}

	rides, err := h.rideService.ListUserRides(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{
		Count: len(rides),
	})
}

// DeleteRide removes a listing the caller owns.
func (h *RideHandler) DeleteRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rideID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), rideID, userID); err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.NoContentResponse(c)
}

// FromLocationSuggestions lists distinct origins across active listings.
func (h *RideHandler) FromLocationSuggestions(c *gin.Context) {
	locations, err := h.rideService.FromLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponse(c, "Locations retrieved successfully", locations)
}

// ToLocationSuggestions lists distinct destinations across active listings.
func (h *RideHandler) ToLocationSuggestions(c *gin.Context) {
	locations, err := h.rideService.ToLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponse(c, "Locations retrieved successfully", locations)
}

// SweepRides triggers the expiry sweep on demand.
func (h *RideHandler) SweepRides(c *gin.Context) {
	swept, err := h.rideService.SweepExpired(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, "Ride", err)
		return
	}

	utils.SuccessResponse(c, "Sweep completed", gin.H{"swept": swept})
}
