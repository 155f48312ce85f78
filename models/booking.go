package models

import "time"

// BookingForm holds the fields a tenant fills in before paying. It is a
// value type: form updates produce a new value via the reducer in
// services/booking, never in-place mutation.
type BookingForm struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	University  string `json:"university"`
	Program     string `json:"program"`
	YearOfStudy int    `json:"yearOfStudy"`
	PropertyID  string `json:"propertyId"`
	BedroomID   string `json:"bedroomId"`
	MoveInDate  string `json:"moveInDate"`  // "YYYY-MM-DD"
	MoveOutDate string `json:"moveOutDate"` // "YYYY-MM-DD", optional
	Notes       string `json:"notes"`
}

// BookingRequest is the payload for a booking submission.
type BookingRequest struct {
	Form            BookingForm `json:"form"`
	PaymentMethodID string      `json:"paymentMethodId"`
}

// PendingBooking is the session state held between quote and confirmation.
// It lives only in the session cache with a TTL and is discarded on
// cancellation or failure; a booking record exists only after payment.
type PendingBooking struct {
	SessionID       string        `json:"sessionId"`
	TenantID        string        `json:"tenantId"`
	LandlordID      string        `json:"landlordId"`
	Form            BookingForm   `json:"form"`
	Quote           PaymentAmount `json:"quote"`
	PaymentIntentID string        `json:"paymentIntentId"`
	ClientSecret    string        `json:"clientSecret"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Booking represents a confirmed booking record. It is created only after
// the processor reports the charge succeeded.
type Booking struct {
	ID               string    `bson:"id" json:"id"`
	PropertyID       string    `bson:"propertyId" json:"propertyId"`
	BedroomID        string    `bson:"bedroomId" json:"bedroomId"`
	TenantID         string    `bson:"tenantId" json:"tenantId"`
	LandlordID       string    `bson:"landlordId" json:"landlordId"`
	MoveInDate       string    `bson:"moveInDate" json:"moveInDate"`
	MoveOutDate      string    `bson:"moveOutDate,omitempty" json:"moveOutDate,omitempty"`
	Amount           float64   `bson:"amount" json:"amount"`
	Currency         string    `bson:"currency" json:"currency"`
	LastMonthPayment float64   `bson:"lastMonthPayment,omitempty" json:"lastMonthPayment,omitempty"`
	SecurityDeposit  float64   `bson:"securityDeposit,omitempty" json:"securityDeposit,omitempty"`
	PaymentIntentID  string    `bson:"paymentIntentId" json:"paymentIntentId"`
	PaymentStatus    string    `bson:"paymentStatus" json:"paymentStatus"` // "completed"
	Status           string    `bson:"status" json:"status"`               // "confirmed"
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingQuoteResponse is returned by the quote endpoint: the computed
// amount plus the client secret the payment dialog needs.
type BookingQuoteResponse struct {
	SessionID    string        `json:"sessionId"`
	Quote        PaymentAmount `json:"quote"`
	ClientSecret string        `json:"clientSecret"`
}
