package models

import "time"

// Enquiry is a tenant question about a listing, delivered to the landlord.
type Enquiry struct {
	ID         string    `bson:"id" json:"id"`
	PropertyID string    `bson:"propertyId" json:"propertyId"`
	LandlordID string    `bson:"landlordId" json:"landlordId"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Message    string    `bson:"message" json:"message"`
	MoveInDate string    `bson:"moveInDate,omitempty" json:"moveInDate,omitempty"`
	Answered   bool      `bson:"answered" json:"answered"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// EnquiryInput is the creation payload.
type EnquiryInput struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Message    string `json:"message" binding:"required"`
	MoveInDate string `json:"moveInDate"`
}
