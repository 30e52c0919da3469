// Package dataset holds the curated offline travel data used by tier 2 of
// the resolution chain. Lookups are exact-key only: a miss is a signal to
// escalate, not an invitation to fuzzy-match.
package dataset

import (
	"context"

	"voyago/models"
)

// Stats summarizes the curated tables, exposed via /api/dataset/stats.
type Stats struct {
	TotalFlights     int64 `json:"totalFlights"`
	UniqueRoutes     int64 `json:"uniqueRoutes"`
	TotalHotelOffers int64 `json:"totalHotelOffers"`
	CitiesWithHotels int64 `json:"citiesWithHotels"`
}

// Repository is the read surface over the curated tables.
type Repository interface {
	// FlightOffers returns offers exactly matching (destination, date,
	// duration, cabin). An empty result means the key is absent.
	FlightOffers(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error)

	// HotelOffers returns offers exactly matching (city, check-in, check-out).
	HotelOffers(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error)

	// CityKnown reports whether the city appears in the hotel city
	// directory at all. A city absent from the directory has no hotel
	// inventory, which is distinct from a dated-offer miss.
	CityKnown(ctx context.Context, cityCode string) (bool, error)

	Stats(ctx context.Context) (Stats, error)
}

// FlightRow is one stored flight offer with its lookup key.
type FlightRow struct {
	Destination   string             `bson:"destination"`
	DepartureDate string             `bson:"departureDate"`
	DurationDays  int                `bson:"durationDays"`
	CabinClass    string             `bson:"cabinClass"`
	Offer         models.FlightOffer `bson:"offer"`
}

// HotelRow is one stored hotel offer with its lookup key.
type HotelRow struct {
	CityCode string            `bson:"cityCode"`
	CheckIn  string            `bson:"checkIn"`
	CheckOut string            `bson:"checkOut"`
	Offer    models.HotelOffer `bson:"offer"`
}

// CityRow is one hotel-directory entry.
type CityRow struct {
	CityCode string   `bson:"cityCode"`
	Hotels   []string `bson:"hotels"`
}
