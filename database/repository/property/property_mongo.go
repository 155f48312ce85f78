package propertyRepo

import (
	"context"
	"fmt"
	"time"

	"rentnest/database"
	"rentnest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPropertyRepo implements PropertyRepository using MongoDB.
type MongoPropertyRepo struct {
	coll *mongo.Collection
}

// NewMongoPropertyRepo creates a new instance of PropertyRepository using MongoDB.
func NewMongoPropertyRepo() PropertyRepository {
	coll := database.Collection("properties")
	repo := &MongoPropertyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for the fields listing search filters on.
func (r *MongoPropertyRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "landlordId", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "nearbyCampuses", Value: 1}}},
		{Keys: bson.D{{Key: "bedrooms.monthlyRent", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new property document.
func (r *MongoPropertyRepo) Create(property *models.Property) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Update modifies an existing property document.
func (r *MongoPropertyRepo) Update(property *models.Property) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	property.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": property.ID}, bson.M{"$set": property})
	if err != nil {
		return fmt.Errorf("failed to update property with id %s: %w", property.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("property with id %s not found", property.ID)
	}
	return nil
}

// Delete removes a property document by its ID.
func (r *MongoPropertyRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("property with id %s not found", id)
	}
	return nil
}

// GetByID fetches a property document by its ID.
func (r *MongoPropertyRepo) GetByID(id string) (*models.Property, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var property models.Property
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch property with id %s: %w", id, err)
	}
	return &property, nil
}

// SetBedroomAvailability flips the availability flag on a single bedroom.
func (r *MongoPropertyRepo) SetBedroomAvailability(propertyID, bedroomID string, available bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": propertyID, "bedrooms.id": bedroomID}
	update := bson.M{
		"$set": bson.M{
			"bedrooms.$.available": available,
			"updatedAt":            time.Now(),
		},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update bedroom %s on property %s: %w", bedroomID, propertyID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("bedroom %s not found on property %s", bedroomID, propertyID)
	}
	return nil
}
