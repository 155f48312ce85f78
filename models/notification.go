package models

// PushMessage is a single FCM push to a device token.
type PushMessage struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// MoveInReminderPayload is the asynq task payload for lease-start reminders.
type MoveInReminderPayload struct {
	BookingID     string `json:"bookingId"`
	TenantID      string `json:"tenantId"`
	PropertyTitle string `json:"propertyTitle"`
	MoveInDate    string `json:"moveInDate"`
}

// EnquiryNotifyPayload is the asynq task payload for landlord enquiry pushes.
type EnquiryNotifyPayload struct {
	EnquiryID  string `json:"enquiryId"`
	LandlordID string `json:"landlordId"`
	PropertyID string `json:"propertyId"`
	Preview    string `json:"preview"`
}
