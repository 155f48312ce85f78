package user

import (
	propertyRepo "rentnest/database/repository/property"
	userRepo "rentnest/database/repository/user"
	"rentnest/models"

	"go.uber.org/zap"
)

// UserService manages accounts, authentication and wishlists.
type UserService interface {
	Register(reg models.UserRegistration) (*models.AuthResponse, error)
	Authenticate(email, password string) (*models.AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	UpdatePassword(userID, currentPassword, newPassword string) error
	UpdateFCMToken(userID, token string) error
	DeleteUser(id string) error
	RevokeToken(userID string) error

	AddToWishlist(userID, propertyID string) error
	RemoveFromWishlist(userID, propertyID string) error
	GetWishlist(userID string) ([]models.Property, error)
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo         userRepo.UserRepository
	PropertyRepo propertyRepo.PropertyRepository
	Tokens       TokenProvider
	Logger       *zap.Logger
}
