package propertyRepo

import (
	"fmt"
	"time"

	"rentnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultPageSize = 20

// GetByLandlord returns all listings owned by the given landlord.
func (r *MongoPropertyRepo) GetByLandlord(landlordID string) ([]models.Property, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"landlordId": landlordID})
	if err != nil {
		return nil, fmt.Errorf("failed to query properties for landlord %s: %w", landlordID, err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties for landlord %s: %w", landlordID, err)
	}
	return properties, nil
}

// GetByIDs fetches the listings with the given IDs (wishlist hydration).
func (r *MongoPropertyRepo) GetByIDs(ids []string) ([]models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query properties by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties by ids: %w", err)
	}
	return properties, nil
}

// Search returns active listings matching the filter, paginated, newest first,
// along with the total match count.
func (r *MongoPropertyRepo) Search(filter models.PropertyFilter) ([]models.Property, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"isActive": true}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.Campus != "" {
		query["nearbyCampuses"] = filter.Campus
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.MinBedrooms > 0 {
		query[fmt.Sprintf("bedrooms.%d", filter.MinBedrooms-1)] = bson.M{"$exists": true}
	}
	rentRange := bson.M{}
	if filter.MinRent > 0 {
		rentRange["$gte"] = filter.MinRent
	}
	if filter.MaxRent > 0 {
		rentRange["$lte"] = filter.MaxRent
	}
	if len(rentRange) > 0 {
		query["bedrooms"] = bson.M{"$elemMatch": bson.M{"monthlyRent": rentRange, "available": true}}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search results: %w", err)
	}
	return properties, total, nil
}
