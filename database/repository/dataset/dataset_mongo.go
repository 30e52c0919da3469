package dataset

import (
	"context"
	"fmt"
	"time"

	"voyago/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDatasetRepo implements Repository using MongoDB.
type MongoDatasetRepo struct {
	flights *mongo.Collection
	hotels  *mongo.Collection
	cities  *mongo.Collection
}

// NewMongoDatasetRepo creates the repository over the voyago database.
func NewMongoDatasetRepo() *MongoDatasetRepo {
	db := database.MongoClient.Database("voyago")
	repo := &MongoDatasetRepo{
		flights: db.Collection("flight_offers"),
		hotels:  db.Collection("hotel_offers"),
		cities:  db.Collection("city_hotels"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create dataset indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes matching the exact-key lookup paths.
func (r *MongoDatasetRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	flightIdx := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "destination", Value: 1},
			{Key: "departureDate", Value: 1},
			{Key: "durationDays", Value: 1},
			{Key: "cabinClass", Value: 1},
		}},
	}
	if _, err := r.flights.Indexes().CreateMany(ctx, flightIdx); err != nil {
		return fmt.Errorf("flight_offers indexes: %w", err)
	}

	hotelIdx := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "cityCode", Value: 1},
			{Key: "checkIn", Value: 1},
			{Key: "checkOut", Value: 1},
		}},
	}
	if _, err := r.hotels.Indexes().CreateMany(ctx, hotelIdx); err != nil {
		return fmt.Errorf("hotel_offers indexes: %w", err)
	}

	cityIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cityCode", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.cities.Indexes().CreateMany(ctx, cityIdx); err != nil {
		return fmt.Errorf("city_hotels indexes: %w", err)
	}
	return nil
}
