package models

import "time"

// BookingOptions are the landlord-configured payment-option flags on a
// property. The flags are intended to be mutually exclusive and are checked
// in declaration order when computing the amount due.
type BookingOptions struct {
	AllowFirstAndLastRent bool `bson:"allowFirstAndLastRent" json:"allowFirstAndLastRent"`
	AllowFirstRent        bool `bson:"allowFirstRent" json:"allowFirstRent"`
	AllowSecurityDeposit  bool `bson:"allowSecurityDeposit" json:"allowSecurityDeposit"`
}

// Bedroom is a bookable unit within a property with its own monthly rent.
type Bedroom struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	MonthlyRent float64 `bson:"monthlyRent" json:"monthlyRent"`
	Furnished   bool    `bson:"furnished" json:"furnished"`
	Available   bool    `bson:"available" json:"available"`
	AvailableAt string  `bson:"availableAt,omitempty" json:"availableAt,omitempty"` // "YYYY-MM-DD"
}

// Photo is a Cloudinary-backed listing image.
type Photo struct {
	PublicID string `bson:"publicId" json:"publicId"`
	URL      string `bson:"url" json:"url"`
}

// Property represents a rental listing.
type Property struct {
	ID              string         `bson:"id" json:"id"`
	LandlordID      string         `bson:"landlordId" json:"landlordId"`
	Title           string         `bson:"title" json:"title"`
	Description     string         `bson:"description" json:"description"`
	PropertyType    string         `bson:"propertyType" json:"propertyType"` // apartment, house, shared_room
	AddressLine     string         `bson:"addressLine" json:"addressLine"`
	City            string         `bson:"city" json:"city"`
	Province        string         `bson:"province" json:"province"`
	PostalCode      string         `bson:"postalCode" json:"postalCode"`
	Country         string         `bson:"country" json:"country"`
	Lat             float64        `bson:"lat" json:"lat"`
	Lng             float64        `bson:"lng" json:"lng"`
	Currency        string         `bson:"currency" json:"currency"`
	SecurityDeposit float64        `bson:"securityDeposit,omitempty" json:"securityDeposit,omitempty"`
	BookingOptions  BookingOptions `bson:"bookingOptions" json:"bookingOptions"`
	Bedrooms        []Bedroom      `bson:"bedrooms" json:"bedrooms"`
	Amenities       []string       `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Photos          []Photo        `bson:"photos,omitempty" json:"photos,omitempty"`
	NearbyCampuses  []string       `bson:"nearbyCampuses,omitempty" json:"nearbyCampuses,omitempty"`
	IsActive        bool           `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// FindBedroom returns the bedroom with the given ID, or nil.
func (p *Property) FindBedroom(bedroomID string) *Bedroom {
	for i := range p.Bedrooms {
		if p.Bedrooms[i].ID == bedroomID {
			return &p.Bedrooms[i]
		}
	}
	return nil
}

// PropertyFilter holds listing search criteria.
type PropertyFilter struct {
	City         string  `form:"city" json:"city"`
	Campus       string  `form:"campus" json:"campus"`
	PropertyType string  `form:"propertyType" json:"propertyType"`
	MinRent      float64 `form:"minRent" json:"minRent"`
	MaxRent      float64 `form:"maxRent" json:"maxRent"`
	MinBedrooms  int     `form:"minBedrooms" json:"minBedrooms"`
	Page         int     `form:"page" json:"page"`
	PageSize     int     `form:"pageSize" json:"pageSize"`
}
