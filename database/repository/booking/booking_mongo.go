package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"fundilink/database"
	"fundilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by the
// "bookings" collection.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("bookings")
	return &MongoBookingRepo{coll: coll}
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var booking models.Booking
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateStatus filters on the current status so a concurrent transition
// cannot be overwritten.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Either the booking does not exist or its status moved on.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("booking %s: %w", id, ErrStaleStatus)
	}
	return nil
}
