package enquiryRepo

import "rentnest/models"

// EnquiryRepository defines the data access contract for enquiries.
type EnquiryRepository interface {
	Create(enquiry *models.Enquiry) error
	GetByID(id string) (*models.Enquiry, error)
	GetByLandlord(landlordID string) ([]models.Enquiry, error)
	GetByProperty(propertyID string) ([]models.Enquiry, error)
	MarkAnswered(id string) error
}
