package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/grisascutelnic/DrumBun/internal/models"
	"github.com/grisascutelnic/DrumBun/internal/repositories/interfaces"
	"github.com/grisascutelnic/DrumBun/pkg/logger"
	"github.com/grisascutelnic/DrumBun/pkg/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxProfileImageSize caps profile image uploads at 5 MB.
const MaxProfileImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserProfile is the public view of a user, including the rating aggregate
// maintained by the rating engine.
type UserProfile struct {
	ID            primitive.ObjectID `json:"id"`
	FullName      string             `json:"full_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	ProfileImage  string             `json:"profile_image"`
	AverageRating float64            `json:"average_rating"`
	TotalRatings  int64              `json:"total_ratings"`
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetProfile(ctx context.Context, id primitive.ObjectID) (*UserProfile, error)

	// UploadProfileImage stores the image and records its reference on the
	// profile. Returns the stored image URL.
	UploadProfileImage(ctx context.Context, userID primitive.ObjectID, reader io.Reader, size int64, contentType string) (string, error)
}

type userService struct {
	userRepo interfaces.UserRepository
	storage  storage.StorageProvider
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, storageProvider storage.StorageProvider, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storageProvider,
		logger:   logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("User profile created")

	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id primitive.ObjectID) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		ID:            user.ID,
		FullName:      user.FullName(),
		Email:         user.Email,
		Phone:         user.Phone,
		ProfileImage:  user.ProfileImage,
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatings,
	}, nil
}

func (s *userService) UploadProfileImage(ctx context.Context, userID primitive.ObjectID, reader io.Reader, size int64, contentType string) (string, error) {
	ext, ok := allowedImageTypes[normalizeContentType(contentType)]
	if !ok {
		return "", models.NewValidationError("image", "Image must be JPEG, PNG or WebP")
	}
	if size > MaxProfileImageSize {
		return "", models.NewValidationError("image", "Image must be at most 5 MB")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	key := path.Join("profiles", userID.Hex(), uuid.NewString()+ext)

	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store profile image (%v): %w", err, models.ErrDependency)
	}

	if err := s.userRepo.UpdateProfileImage(ctx, userID, uploaded.URL); err != nil {
		return "", err
	}

	s.logger.LogUserAction(userID, "profile_image_uploaded", map[string]interface{}{
		"key": key,
	})

	return uploaded.URL, nil
}

func normalizeContentType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
