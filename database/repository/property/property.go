package propertyRepo

import "rentnest/models"

// PropertyRepository defines the data access contract for listings.
type PropertyRepository interface {
	Create(property *models.Property) error
	Update(property *models.Property) error
	Delete(id string) error
	GetByID(id string) (*models.Property, error)
	GetByLandlord(landlordID string) ([]models.Property, error)
	GetByIDs(ids []string) ([]models.Property, error)
	Search(filter models.PropertyFilter) ([]models.Property, int64, error)
	SetBedroomAvailability(propertyID, bedroomID string, available bool) error
}
