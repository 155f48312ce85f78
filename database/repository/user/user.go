package userRepo

import "rentnest/models"

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	AddToWishlist(userID, propertyID string) error
	RemoveFromWishlist(userID, propertyID string) error
}
