package bookingRepo

import "rentnest/models"

// BookingRepository defines the data access contract for booking records.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByTenant(tenantID string) ([]models.Booking, error)
	GetByLandlord(landlordID string) ([]models.Booking, error)
}
