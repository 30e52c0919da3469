package dataset

import (
	"context"
	"fmt"
	"time"

	"voyago/config"
	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findLimit(configured, fallback int) int64 {
	if configured > 0 {
		return int64(configured)
	}
	return int64(fallback)
}

// FlightOffers returns stored offers for the exact resolution key.
func (r *MongoDatasetRepo) FlightOffers(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"destination":   q.Destination,
		"departureDate": q.DepartureDate,
		"durationDays":  q.DurationDays,
		"cabinClass":    q.CabinClass,
	}
	limit := findLimit(config.AppConfig.SearchResultLimit, 5)
	cur, err := r.flights.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("flight_offers find: %w", err)
	}
	defer cur.Close(ctx)

	var rows []FlightRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("flight_offers decode: %w", err)
	}

	offers := make([]models.FlightOffer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, row.Offer)
	}
	return offers, nil
}

// HotelOffers returns stored offers for the exact (city, dates) key.
func (r *MongoDatasetRepo) HotelOffers(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"cityCode": q.CityCode,
		"checkIn":  q.CheckIn,
		"checkOut": q.CheckOut,
	}
	limit := findLimit(config.AppConfig.HotelResultLimit, 10)
	cur, err := r.hotels.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("hotel_offers find: %w", err)
	}
	defer cur.Close(ctx)

	var rows []HotelRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("hotel_offers decode: %w", err)
	}

	offers := make([]models.HotelOffer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, row.Offer)
	}
	return offers, nil
}

// CityKnown checks the hotel city directory.
func (r *MongoDatasetRepo) CityKnown(ctx context.Context, cityCode string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.cities.FindOne(ctx, bson.M{"cityCode": cityCode}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("city_hotels lookup for %s: %w", cityCode, err)
	}
	return true, nil
}

// Stats reports table sizes for the stats endpoint.
func (r *MongoDatasetRepo) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var s Stats
	var err error

	if s.TotalFlights, err = r.flights.CountDocuments(ctx, bson.M{}); err != nil {
		return s, fmt.Errorf("count flight_offers: %w", err)
	}

	routes, err := r.flights.Distinct(ctx, "destination", bson.M{})
	if err != nil {
		return s, fmt.Errorf("distinct routes: %w", err)
	}
	s.UniqueRoutes = int64(len(routes))

	if s.TotalHotelOffers, err = r.hotels.CountDocuments(ctx, bson.M{}); err != nil {
		return s, fmt.Errorf("count hotel_offers: %w", err)
	}
	if s.CitiesWithHotels, err = r.cities.CountDocuments(ctx, bson.M{}); err != nil {
		return s, fmt.Errorf("count city_hotels: %w", err)
	}
	return s, nil
}
