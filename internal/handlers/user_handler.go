package handlers

import (
	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/services"
	"github.com/grisascutelnic/DrumBun/internal/utils"
	"github.com/grisascutelnic/DrumBun/internal/validators"
	"github.com/grisascutelnic/DrumBun/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	logger      *logger.Logger
}

func NewUserHandler(userService services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CreateUser registers a profile record for the identity collaborator.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&user); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	created, err := h.userService.CreateUser(c.Request.Context(), &user)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	utils.CreatedResponse(c, "User created successfully", created)
}

// GetProfile returns a user's public profile with the rating aggregate.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := parseObjectIDParam(c, "user_id")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved successfully", profile)
}

// UploadProfileImage stores the caller's profile image.
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Missing image file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unreadable image file")
		return
	}
	defer file.Close()

	url, err := h.userService.UploadProfileImage(
		c.Request.Context(),
		userID,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		respondServiceError(c, h.logger, "User", err)
		return
	}

	utils.SuccessResponse(c, "Profile image uploaded successfully", gin.H{"url": url})
}
