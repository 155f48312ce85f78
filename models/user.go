package models

import "time"

// User represents a platform user (tenant or landlord).
type User struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	University   string    `bson:"university,omitempty" json:"university,omitempty"`
	IsLandlord   bool      `bson:"isLandlord" json:"isLandlord"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	Wishlist     []string  `bson:"wishlist,omitempty" json:"wishlist,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UserRegistration is the signup payload.
type UserRegistration struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Phone      string `json:"phone"`
	University string `json:"university"`
	IsLandlord bool   `json:"isLandlord"`
}

// AuthResponse is returned after a successful signup or signin.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
