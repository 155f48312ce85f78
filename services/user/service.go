package user

import (
	"fmt"
	"strings"

	"rentnest/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates an account and signs the user in.
func (s *DefaultUserService) Register(reg models.UserRegistration) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if existing, _ := s.Repo.GetByEmail(email); existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		ID:           uuid.New().String(),
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        reg.Phone,
		University:   reg.University,
		IsLandlord:   reg.IsLandlord,
	}
	if err := s.Repo.Create(newUser); err != nil {
		return nil, err
	}

	token, err := s.Tokens.Issue(newUser.ID, newUser.Email)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("User registered", zap.String("userID", newUser.ID))
	return &models.AuthResponse{Token: token, User: *newUser}, nil
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: *u}, nil
}

// GetUserByID fetches a user profile.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// UpdateUser writes profile fields. Credentials and wishlist are managed by
// their own operations and are not overwritten here.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	existing, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, err
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Phone = user.Phone
	existing.University = user.University
	existing.AvatarURL = user.AvatarURL

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdatePassword changes the password after checking the current one, and
// revokes outstanding tokens.
func (s *DefaultUserService) UpdatePassword(userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.Repo.Update(u); err != nil {
		return err
	}

	return s.Tokens.Revoke(userID)
}

// UpdateFCMToken stores the device token push notifications go to.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return err
	}
	u.FCMToken = token
	return s.Repo.Update(u)
}

// DeleteUser removes the account and revokes its tokens.
func (s *DefaultUserService) DeleteUser(id string) error {
	if err := s.Tokens.Revoke(id); err != nil {
		s.Logger.Warn("Failed to revoke tokens on delete", zap.String("userID", id), zap.Error(err))
	}
	return s.Repo.Delete(id)
}

// RevokeToken signs the user out everywhere.
func (s *DefaultUserService) RevokeToken(userID string) error {
	return s.Tokens.Revoke(userID)
}

// AddToWishlist saves a listing to the user's wishlist.
func (s *DefaultUserService) AddToWishlist(userID, propertyID string) error {
	if _, err := s.PropertyRepo.GetByID(propertyID); err != nil {
		return err
	}
	return s.Repo.AddToWishlist(userID, propertyID)
}

// RemoveFromWishlist drops a listing from the user's wishlist.
func (s *DefaultUserService) RemoveFromWishlist(userID, propertyID string) error {
	return s.Repo.RemoveFromWishlist(userID, propertyID)
}

// GetWishlist returns the user's saved listings, hydrated.
func (s *DefaultUserService) GetWishlist(userID string) ([]models.Property, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return s.PropertyRepo.GetByIDs(u.Wishlist)
}
