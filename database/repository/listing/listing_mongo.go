package listingRepo

import (
	"context"
	"fmt"
	"time"

	"fundilink/database"
	"fundilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a new ListingRepository backed by the
// "services" collection.
func NewMongoListingRepo() ListingRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("services")
	return &MongoListingRepo{coll: coll}
}

func (r *MongoListingRepo) GetByID(ctx context.Context, id string) (*models.ServiceListing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var listing models.ServiceListing
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, err)
	}
	return &listing, nil
}

// SearchActive returns active listings whose category matches any criteria
// category (exact or substring, case-insensitive) or whose title contains
// the title term.
func (r *MongoListingRepo) SearchActive(ctx context.Context, criteria ListingSearchCriteria) ([]models.ServiceListing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var clauses bson.A
	for _, c := range criteria.Categories {
		clauses = append(clauses, bson.M{"category": bson.M{"$regex": c, "$options": "i"}})
	}
	if criteria.TitleTerm != "" {
		clauses = append(clauses, bson.M{"title": bson.M{"$regex": criteria.TitleTerm, "$options": "i"}})
	}
	if len(clauses) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"active": true,
		"$or":    clauses,
	}

	opts := options.Find().SetLimit(100)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing search query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.ServiceListing
	for cursor.Next(ctx) {
		var l models.ServiceListing
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return listings, nil
}

// FindOrCreate performs an atomic upsert keyed on (provider_id, category).
// The candidate fields are applied only on insert, so an existing listing is
// returned untouched apart from being reactivated. A duplicate-key error from
// a concurrent upsert is resolved by re-reading the winner's record.
func (r *MongoListingRepo) FindOrCreate(ctx context.Context, listing *models.ServiceListing) (*models.ServiceListing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": listing.ProviderID,
		"category":    listing.Category,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":          listing.ID,
			"provider_id": listing.ProviderID,
			"category":    listing.Category,
			"title":       listing.Title,
			"price":       listing.Price,
			"duration":    listing.Duration,
			"synthesized": listing.Synthesized,
			"created_at":  listing.CreatedAt,
		},
		"$set": bson.M{"active": true},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result models.ServiceListing
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent upsert won the race; reuse its record.
			if err := r.coll.FindOne(ctx, filter).Decode(&result); err != nil {
				return nil, fmt.Errorf("failed to re-read listing after upsert conflict: %w", err)
			}
			return &result, nil
		}
		return nil, fmt.Errorf("listing upsert failed for provider %s category %s: %w",
			listing.ProviderID, listing.Category, err)
	}
	return &result, nil
}

func (r *MongoListingRepo) Create(ctx context.Context, listing *models.ServiceListing) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (provider_id, category) index the
// synthesis upsert depends on, plus the search indexes.
func (r *MongoListingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "category", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "active", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create listing indexes: %w", err)
	}
	return nil
}
