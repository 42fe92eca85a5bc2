package providerRepo

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

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new ProviderRepository backed by the
// "providers" collection.
func NewMongoProviderRepo() ProviderRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("providers")
	return &MongoProviderRepo{coll: coll}
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var provider models.Provider
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&provider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("provider %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetManyByIDs(ctx context.Context, ids []string) ([]models.Provider, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers by ids: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return providers, nil
}

// SearchBySkills returns providers whose skill set contains any of the given
// terms as a case-insensitive substring. Status and area filters are applied
// in the query; callers still pass results through the eligibility gate.
func (r *MongoProviderRepo) SearchBySkills(ctx context.Context, criteria ProviderSearchCriteria) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if len(criteria.SkillTerms) > 0 {
		var terms bson.A
		for _, t := range criteria.SkillTerms {
			terms = append(terms, bson.M{"skills": bson.M{"$regex": t, "$options": "i"}})
		}
		filter["$or"] = terms
	}
	if len(criteria.Areas) > 0 {
		filter["serviceAreas"] = bson.M{"$in": criteria.Areas}
	}
	if len(criteria.Statuses) > 0 {
		filter["status"] = bson.M{"$in": criteria.Statuses}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(50)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("skill search query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var providers []models.Provider
	for cursor.Next(ctx) {
		var p models.Provider
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode provider: %w", err)
		}
		providers = append(providers, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used by the discovery search paths.
func (r *MongoProviderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "skills", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "serviceAreas", Value: 1}},
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create provider indexes: %w", err)
	}
	return nil
}
