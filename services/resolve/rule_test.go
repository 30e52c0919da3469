package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

func TestRuleFlightsDeterministicAndTotal(t *testing.T) {
	g := &RuleGenerator{}
	cabins := []string{
		models.CabinEconomy,
		models.CabinPremiumEconomy,
		models.CabinBusiness,
		models.CabinFirst,
	}
	for _, cabin := range cabins {
		q := models.FlightQuery{
			Origin:        "CAI",
			Destination:   "PAR",
			DepartureDate: "2025-12-20",
			DurationDays:  7,
			CabinClass:    cabin,
		}
		first, err := g.SearchFlights(context.Background(), q)
		require.NoError(t, err, cabin)
		require.Len(t, first, 3, cabin)

		second, err := g.SearchFlights(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, first, second, "same query yields identical offers")
	}
}

func TestRuleFlightsPricesScaleWithCabin(t *testing.T) {
	g := &RuleGenerator{}
	base := models.FlightQuery{
		Origin: "CAI", Destination: "RUH",
		DepartureDate: "2025-11-02", DurationDays: 5,
	}

	economy := base
	economy.CabinClass = models.CabinEconomy
	business := base
	business.CabinClass = models.CabinBusiness

	eco, err := g.SearchFlights(context.Background(), economy)
	require.NoError(t, err)
	biz, err := g.SearchFlights(context.Background(), business)
	require.NoError(t, err)
	assert.Greater(t, biz[0].Price, eco[0].Price)
}

func TestRuleFlightsArriveSameDay(t *testing.T) {
	g := &RuleGenerator{}
	offers, err := g.SearchFlights(context.Background(), models.FlightQuery{
		Origin: "CAI", Destination: "RUH",
		DepartureDate: "2025-11-02", DurationDays: 5,
		CabinClass: models.CabinEconomy,
	})
	require.NoError(t, err)
	for _, o := range offers {
		assert.Equal(t, "2025-11-02", o.ArrivalDate())
		assert.True(t, o.ArrivalAt.After(o.DepartureAt))
		assert.Equal(t, "EGP", o.Currency)
	}
}

func TestRuleFlightsRejectMalformedInput(t *testing.T) {
	g := &RuleGenerator{}

	_, err := g.SearchFlights(context.Background(), models.FlightQuery{
		Origin: "CAI", Destination: "RUH",
		DepartureDate: "next tuesday", DurationDays: 5,
		CabinClass: models.CabinEconomy,
	})
	assert.Error(t, err)

	_, err = g.SearchFlights(context.Background(), models.FlightQuery{
		Origin: "CAI", Destination: "RUH",
		DepartureDate: "2025-11-02", DurationDays: 0,
		CabinClass: models.CabinEconomy,
	})
	assert.Error(t, err)

	// Empty cabin must error, never panic.
	_, err = g.SearchFlights(context.Background(), models.FlightQuery{
		Origin: "CAI", Destination: "RUH",
		DepartureDate: "2025-11-02", DurationDays: 5,
	})
	assert.Error(t, err)
}

func TestRuleHotelsCoverAnyKnownOrUnknownCity(t *testing.T) {
	g := &RuleGenerator{}
	for _, city := range []string{"RUH", "LON", "XYZ"} {
		offers, err := g.SearchHotels(context.Background(), models.HotelQuery{
			CityCode: city, CheckIn: "2025-11-02", CheckOut: "2025-11-07",
		})
		require.NoError(t, err, city)
		require.Len(t, offers, 3, city)
		for _, o := range offers {
			assert.Equal(t, city, o.CityCode)
			assert.Equal(t, 5, o.Nights())
			assert.Greater(t, o.NightlyRate, 0.0)
		}
	}
}

func TestRuleHotelsRejectInvertedStay(t *testing.T) {
	g := &RuleGenerator{}
	_, err := g.SearchHotels(context.Background(), models.HotelQuery{
		CityCode: "RUH", CheckIn: "2025-11-07", CheckOut: "2025-11-02",
	})
	assert.Error(t, err)
}
