package property

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"rentnest/config"
	"rentnest/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	searchCachePrefix = "propertySearch:"
	searchCacheTTL    = 2 * time.Minute
)

// Create validates and stores a new listing for the landlord.
func (s *DefaultPropertyService) Create(landlordID string, property models.Property) (*models.Property, error) {
	if property.Title == "" {
		return nil, fmt.Errorf("listing title is required")
	}
	if len(property.Bedrooms) == 0 {
		return nil, fmt.Errorf("listing needs at least one bedroom")
	}
	for i := range property.Bedrooms {
		if property.Bedrooms[i].MonthlyRent < 0 {
			return nil, fmt.Errorf("bedroom rent cannot be negative")
		}
		if property.Bedrooms[i].ID == "" {
			property.Bedrooms[i].ID = uuid.New().String()
		}
	}

	property.ID = uuid.New().String()
	property.LandlordID = landlordID
	property.IsActive = true
	if property.Currency == "" {
		property.Currency = config.AppConfig.DefaultCurrency
	}

	if err := s.Repo.Create(&property); err != nil {
		return nil, err
	}
	s.invalidateSearchCache()

	s.Logger.Info("Listing created", zap.String("propertyID", property.ID), zap.String("landlordID", landlordID))
	return &property, nil
}

// Update modifies a listing the landlord owns.
func (s *DefaultPropertyService) Update(landlordID string, property models.Property) (*models.Property, error) {
	existing, err := s.ownedBy(landlordID, property.ID)
	if err != nil {
		return nil, err
	}

	// Photos are managed through AddPhoto/RemovePhoto.
	property.LandlordID = existing.LandlordID
	property.Photos = existing.Photos
	property.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(&property); err != nil {
		return nil, err
	}
	s.invalidateSearchCache()
	return &property, nil
}

// Delete removes a listing the landlord owns.
func (s *DefaultPropertyService) Delete(landlordID, propertyID string) error {
	if _, err := s.ownedBy(landlordID, propertyID); err != nil {
		return err
	}
	if err := s.Repo.Delete(propertyID); err != nil {
		return err
	}
	s.invalidateSearchCache()
	return nil
}

// GetByID fetches a single listing.
func (s *DefaultPropertyService) GetByID(id string) (*models.Property, error) {
	return s.Repo.GetByID(id)
}

// GetByLandlord lists the landlord's own properties.
func (s *DefaultPropertyService) GetByLandlord(landlordID string) ([]models.Property, error) {
	return s.Repo.GetByLandlord(landlordID)
}

// Search returns a filtered page of active listings, served from the Redis
// cache when the same query was run recently.
func (s *DefaultPropertyService) Search(ctx context.Context, filter models.PropertyFilter) (*SearchResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	cacheKey, err := searchCacheKey(filter)
	if err == nil && s.Cache != nil {
		if data, cerr := s.Cache.Get(ctx, cacheKey).Result(); cerr == nil {
			var cached SearchResult
			if jerr := json.Unmarshal([]byte(data), &cached); jerr == nil {
				return &cached, nil
			}
		}
	}

	properties, total, err := s.Repo.Search(filter)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Properties: properties,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}

	if s.Cache != nil {
		if data, jerr := json.Marshal(result); jerr == nil {
			if cerr := s.Cache.Set(ctx, cacheKey, data, searchCacheTTL).Err(); cerr != nil {
				s.Logger.Debug("Failed to cache search result", zap.Error(cerr))
			}
		}
	}
	return result, nil
}

// AddPhoto uploads a photo to storage and attaches it to the listing.
func (s *DefaultPropertyService) AddPhoto(ctx context.Context, landlordID, propertyID string, file multipart.File) (*models.Property, error) {
	existing, err := s.ownedBy(landlordID, propertyID)
	if err != nil {
		return nil, err
	}

	publicID, url, err := s.Storage.UploadPhoto(ctx, file, "listings/"+propertyID)
	if err != nil {
		return nil, err
	}

	existing.Photos = append(existing.Photos, models.Photo{PublicID: publicID, URL: url})
	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	s.invalidateSearchCache()
	return existing, nil
}

// RemovePhoto detaches a photo from the listing and deletes it in storage.
func (s *DefaultPropertyService) RemovePhoto(ctx context.Context, landlordID, propertyID, publicID string) (*models.Property, error) {
	existing, err := s.ownedBy(landlordID, propertyID)
	if err != nil {
		return nil, err
	}

	photos := existing.Photos[:0]
	found := false
	for _, p := range existing.Photos {
		if p.PublicID == publicID {
			found = true
			continue
		}
		photos = append(photos, p)
	}
	if !found {
		return nil, fmt.Errorf("photo %s not found on property %s", publicID, propertyID)
	}
	existing.Photos = photos

	if err := s.Storage.DeletePhoto(ctx, publicID); err != nil {
		s.Logger.Warn("Failed to delete photo in storage", zap.String("publicID", publicID), zap.Error(err))
	}
	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ownedBy fetches a listing and checks the landlord owns it.
func (s *DefaultPropertyService) ownedBy(landlordID, propertyID string) (*models.Property, error) {
	existing, err := s.Repo.GetByID(propertyID)
	if err != nil {
		return nil, err
	}
	if existing.LandlordID != landlordID {
		return nil, fmt.Errorf("property %s does not belong to landlord %s", propertyID, landlordID)
	}
	return existing, nil
}

func searchCacheKey(filter models.PropertyFilter) (string, error) {
	b, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	return searchCachePrefix + string(b), nil
}

// invalidateSearchCache drops all cached search pages after a write.
func (s *DefaultPropertyService) invalidateSearchCache() {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	iter := s.Cache.Scan(ctx, 0, searchCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.Logger.Debug("Search cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
			s.Logger.Debug("Search cache invalidation failed", zap.Error(err))
		}
	}
}
