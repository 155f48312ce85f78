package enquiryRepo

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

// MongoEnquiryRepo implements EnquiryRepository using MongoDB.
type MongoEnquiryRepo struct {
	coll *mongo.Collection
}

// NewMongoEnquiryRepo creates a new instance of EnquiryRepository using MongoDB.
func NewMongoEnquiryRepo() EnquiryRepository {
	coll := database.Collection("enquiries")
	repo := &MongoEnquiryRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEnquiryRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "landlordId", Value: 1}}},
		{Keys: bson.D{{Key: "propertyId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new enquiry document.
func (r *MongoEnquiryRepo) Create(enquiry *models.Enquiry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	enquiry.CreatedAt = time.Now()
	_, err := r.coll.InsertOne(ctx, enquiry)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}
	return nil
}

// GetByID fetches an enquiry by its ID.
func (r *MongoEnquiryRepo) GetByID(id string) (*models.Enquiry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var enquiry models.Enquiry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&enquiry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("enquiry with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch enquiry with id %s: %w", id, err)
	}
	return &enquiry, nil
}

// GetByLandlord returns enquiries addressed to the landlord, newest first.
func (r *MongoEnquiryRepo) GetByLandlord(landlordID string) ([]models.Enquiry, error) {
	return r.findSorted(bson.M{"landlordId": landlordID})
}

// GetByProperty returns enquiries about a listing, newest first.
func (r *MongoEnquiryRepo) GetByProperty(propertyID string) ([]models.Enquiry, error) {
	return r.findSorted(bson.M{"propertyId": propertyID})
}

// MarkAnswered flags an enquiry as handled.
func (r *MongoEnquiryRepo) MarkAnswered(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"answered": true}})
	if err != nil {
		return fmt.Errorf("failed to mark enquiry %s answered: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("enquiry with id %s not found", id)
	}
	return nil
}

func (r *MongoEnquiryRepo) findSorted(filter bson.M) ([]models.Enquiry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var enquiries []models.Enquiry
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, fmt.Errorf("failed to decode enquiries: %w", err)
	}
	return enquiries, nil
}
