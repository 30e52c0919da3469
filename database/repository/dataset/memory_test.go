package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

func TestFlightOffersExactKeyMatch(t *testing.T) {
	repo := NewSeededMemoryRepo()
	ctx := context.Background()

	offers, err := repo.FlightOffers(ctx, models.FlightQuery{
		Destination:   "RUH",
		DepartureDate: "2025-11-02",
		DurationDays:  5,
		CabinClass:    models.CabinEconomy,
	})
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}

func TestFlightOffersAnyKeyFieldMismatchMisses(t *testing.T) {
	repo := NewSeededMemoryRepo()
	ctx := context.Background()
	exact := models.FlightQuery{
		Destination:   "RUH",
		DepartureDate: "2025-11-02",
		DurationDays:  5,
		CabinClass:    models.CabinEconomy,
	}

	offDate := exact
	offDate.DepartureDate = "2025-11-03"
	offDuration := exact
	offDuration.DurationDays = 6
	offCabin := exact
	offCabin.CabinClass = models.CabinFirst

	for name, q := range map[string]models.FlightQuery{
		"adjacent date": offDate, "off-by-one duration": offDuration, "other cabin": offCabin,
	} {
		offers, err := repo.FlightOffers(ctx, q)
		require.NoError(t, err, name)
		assert.Empty(t, offers, name)
	}
}

func TestFlightOffersIgnoreOrigin(t *testing.T) {
	repo := NewSeededMemoryRepo()
	q := models.FlightQuery{
		Origin:        "NYC", // not part of the lookup key
		Destination:   "RUH",
		DepartureDate: "2025-11-02",
		DurationDays:  5,
		CabinClass:    models.CabinEconomy,
	}
	offers, err := repo.FlightOffers(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}

func TestHotelOffersExactStayMatch(t *testing.T) {
	repo := NewSeededMemoryRepo()
	ctx := context.Background()

	offers, err := repo.HotelOffers(ctx, models.HotelQuery{
		CityCode: "RUH", CheckIn: "2025-11-02", CheckOut: "2025-11-07",
	})
	require.NoError(t, err)
	assert.Len(t, offers, 3)

	offers, err = repo.HotelOffers(ctx, models.HotelQuery{
		CityCode: "RUH", CheckIn: "2025-11-03", CheckOut: "2025-11-08",
	})
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestCityKnownDistinguishesDirectoryFromOffers(t *testing.T) {
	repo := NewSeededMemoryRepo()
	ctx := context.Background()

	// Dubai has curated flights but is absent from the hotel directory.
	known, err := repo.CityKnown(ctx, "DXB")
	require.NoError(t, err)
	assert.False(t, known)

	known, err = repo.CityKnown(ctx, "RUH")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestStatsCountsSeedData(t *testing.T) {
	repo := NewSeededMemoryRepo()
	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(SeedFlights)), stats.TotalFlights)
	assert.Equal(t, int64(len(SeedHotels)), stats.TotalHotelOffers)
	assert.Equal(t, int64(len(SeedCities)), stats.CitiesWithHotels)
	assert.Equal(t, int64(4), stats.UniqueRoutes)
}
