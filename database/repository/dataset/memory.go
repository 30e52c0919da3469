package dataset

import (
	"context"

	"voyago/models"
)

// MemoryDatasetRepo serves the curated tables from process memory. Used by
// tests and by local development without Mongo.
type MemoryDatasetRepo struct {
	flights []FlightRow
	hotels  []HotelRow
	cities  []CityRow
}

// NewMemoryDatasetRepo builds a repository over the given rows.
func NewMemoryDatasetRepo(flights []FlightRow, hotels []HotelRow, cities []CityRow) *MemoryDatasetRepo {
	return &MemoryDatasetRepo{flights: flights, hotels: hotels, cities: cities}
}

// NewSeededMemoryRepo builds a repository over the standard curated data.
func NewSeededMemoryRepo() *MemoryDatasetRepo {
	return NewMemoryDatasetRepo(SeedFlights, SeedHotels, SeedCities)
}

func (r *MemoryDatasetRepo) FlightOffers(_ context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	var offers []models.FlightOffer
	for _, row := range r.flights {
		if row.Destination == q.Destination &&
			row.DepartureDate == q.DepartureDate &&
			row.DurationDays == q.DurationDays &&
			row.CabinClass == q.CabinClass {
			offers = append(offers, row.Offer)
		}
	}
	return offers, nil
}

func (r *MemoryDatasetRepo) HotelOffers(_ context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	var offers []models.HotelOffer
	for _, row := range r.hotels {
		if row.CityCode == q.CityCode && row.CheckIn == q.CheckIn && row.CheckOut == q.CheckOut {
			offers = append(offers, row.Offer)
		}
	}
	return offers, nil
}

func (r *MemoryDatasetRepo) CityKnown(_ context.Context, cityCode string) (bool, error) {
	for _, row := range r.cities {
		if row.CityCode == cityCode {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryDatasetRepo) Stats(_ context.Context) (Stats, error) {
	routes := map[string]struct{}{}
	for _, row := range r.flights {
		routes[row.Destination] = struct{}{}
	}
	return Stats{
		TotalFlights:     int64(len(r.flights)),
		UniqueRoutes:     int64(len(routes)),
		TotalHotelOffers: int64(len(r.hotels)),
		CitiesWithHotels: int64(len(r.cities)),
	}, nil
}
