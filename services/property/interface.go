package property

import (
	"context"
	"mime/multipart"

	propertyRepo "rentnest/database/repository/property"
	"rentnest/models"
	"rentnest/services/storage"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SearchResult is one page of listings.
type SearchResult struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
}

// PropertyService manages listings: landlord CRUD, tenant search, photos.
type PropertyService interface {
	Create(landlordID string, property models.Property) (*models.Property, error)
	Update(landlordID string, property models.Property) (*models.Property, error)
	Delete(landlordID, propertyID string) error
	GetByID(id string) (*models.Property, error)
	GetByLandlord(landlordID string) ([]models.Property, error)
	Search(ctx context.Context, filter models.PropertyFilter) (*SearchResult, error)
	AddPhoto(ctx context.Context, landlordID, propertyID string, file multipart.File) (*models.Property, error)
	RemovePhoto(ctx context.Context, landlordID, propertyID, publicID string) (*models.Property, error)
}

// DefaultPropertyService implements PropertyService.
type DefaultPropertyService struct {
	Repo    propertyRepo.PropertyRepository
	Cache   *redis.Client
	Storage storage.StorageService
	Logger  *zap.Logger
}
