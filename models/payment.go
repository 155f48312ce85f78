package models

// PricingInput carries the amounts a booking quote is computed from,
// derived from the selected bedroom and its property.
type PricingInput struct {
	MonthlyRent     float64 `json:"monthlyRent"`
	SecurityDeposit float64 `json:"securityDeposit"`
	Currency        string  `json:"currency"`
}

// PaymentAmount is the computed amount due for a booking attempt.
// LastMonthPayment is set only when the first-and-last-rent option applies.
type PaymentAmount struct {
	Amount                 float64  `json:"amount"`
	Currency               string   `json:"currency"`
	LastMonthPayment       *float64 `json:"lastMonthPayment,omitempty"`
	SecurityDepositCharged *float64 `json:"securityDepositCharged,omitempty"`
}

// PaymentIntentRef identifies a created payment intent at the processor.
type PaymentIntentRef struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// PaymentConfirmation is the processor's verdict on a confirmation attempt.
type PaymentConfirmation struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"` // "succeeded" is the only success value
	Message         string `json:"message,omitempty"`
}
