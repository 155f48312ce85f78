package enquiry

import (
	"fmt"

	enquiryRepo "rentnest/database/repository/enquiry"
	propertyRepo "rentnest/database/repository/property"
	userRepo "rentnest/database/repository/user"
	"rentnest/models"
	"rentnest/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnquiryService handles tenant questions about listings.
type EnquiryService interface {
	Create(tenantID string, input models.EnquiryInput) (*models.Enquiry, error)
	GetByLandlord(landlordID string) ([]models.Enquiry, error)
	GetByProperty(landlordID, propertyID string) ([]models.Enquiry, error)
	MarkAnswered(landlordID, enquiryID string) error
}

// DefaultEnquiryService implements EnquiryService.
type DefaultEnquiryService struct {
	Repo         enquiryRepo.EnquiryRepository
	PropertyRepo propertyRepo.PropertyRepository
	UserRepo     userRepo.UserRepository
	Scheduler    tasks.Scheduler
	Logger       *zap.Logger
}

// Create records an enquiry and queues a push to the landlord.
func (s *DefaultEnquiryService) Create(tenantID string, input models.EnquiryInput) (*models.Enquiry, error) {
	property, err := s.PropertyRepo.GetByID(input.PropertyID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.UserRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}

	enq := &models.Enquiry{
		ID:         uuid.New().String(),
		PropertyID: property.ID,
		LandlordID: property.LandlordID,
		TenantID:   tenantID,
		Name:       tenant.FirstName + " " + tenant.LastName,
		Email:      tenant.Email,
		Message:    input.Message,
		MoveInDate: input.MoveInDate,
	}
	if err := s.Repo.Create(enq); err != nil {
		return nil, err
	}

	preview := enq.Message
	if len(preview) > 80 {
		preview = preview[:80]
	}
	payload := models.EnquiryNotifyPayload{
		EnquiryID:  enq.ID,
		LandlordID: enq.LandlordID,
		PropertyID: enq.PropertyID,
		Preview:    preview,
	}
	if err := s.Scheduler.EnqueueEnquiryNotify(payload); err != nil {
		// The enquiry is saved; delivery is retried by the worker, not here.
		s.Logger.Warn("Failed to enqueue enquiry notification", zap.String("enquiryID", enq.ID), zap.Error(err))
	}

	return enq, nil
}

// GetByLandlord lists enquiries addressed to the landlord.
func (s *DefaultEnquiryService) GetByLandlord(landlordID string) ([]models.Enquiry, error) {
	return s.Repo.GetByLandlord(landlordID)
}

// GetByProperty lists enquiries about one of the landlord's listings.
func (s *DefaultEnquiryService) GetByProperty(landlordID, propertyID string) ([]models.Enquiry, error) {
	property, err := s.PropertyRepo.GetByID(propertyID)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, fmt.Errorf("property %s does not belong to landlord %s", propertyID, landlordID)
	}
	return s.Repo.GetByProperty(propertyID)
}

// MarkAnswered flags an enquiry as handled by its landlord.
func (s *DefaultEnquiryService) MarkAnswered(landlordID, enquiryID string) error {
	enq, err := s.Repo.GetByID(enquiryID)
	if err != nil {
		return err
	}
	if enq.LandlordID != landlordID {
		return fmt.Errorf("enquiry %s does not belong to landlord %s", enquiryID, landlordID)
	}
	return s.Repo.MarkAnswered(enquiryID)
}
