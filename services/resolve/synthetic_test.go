package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/models"
)

type scriptedGenerator struct {
	output string
	err    error
	prompt string
}

func (g *scriptedGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.output, g.err
}

const flightJSON = `[
	{"carrier": "AF", "flight_number": "AF571", "price": 13800, "currency": "EGP",
	 "departure_at": "2025-12-20T09:30:00", "arrival_at": "2025-12-20T13:10:00", "fare_basis": "YFLEX"},
	{"carrier": "MS", "flight_number": "MS799", "price": 12900, "currency": "EGP",
	 "departure_at": "2025-12-20T15:00:00", "arrival_at": "2025-12-20T18:45:00", "fare_basis": "OBASIC"}
]`

func parisQuery() models.FlightQuery {
	return models.FlightQuery{
		Origin: "CAI", Destination: "PAR",
		DepartureDate: "2025-12-20", DurationDays: 7,
		CabinClass: models.CabinEconomy,
	}
}

func TestSyntheticFlightsParsed(t *testing.T) {
	gen := &scriptedGenerator{output: flightJSON}
	s := &SyntheticGenerator{Gen: gen}

	offers, err := s.SearchFlights(context.Background(), parisQuery())
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "AF571", offers[0].FlightNumber)
	assert.Equal(t, 13800.0, offers[0].Price)
	assert.Equal(t, "2025-12-20", offers[0].ArrivalDate())
	assert.Equal(t, models.CabinEconomy, offers[0].CabinClass)
}

func TestSyntheticFlightsToleratesFences(t *testing.T) {
	gen := &scriptedGenerator{output: "```json\n" + flightJSON + "\n```"}
	s := &SyntheticGenerator{Gen: gen}

	offers, err := s.SearchFlights(context.Background(), parisQuery())
	require.NoError(t, err)
	assert.Len(t, offers, 2)
}

func TestSyntheticFlightsPromptCarriesQueryAndBand(t *testing.T) {
	gen := &scriptedGenerator{output: flightJSON}
	s := &SyntheticGenerator{Gen: gen}

	q := parisQuery()
	q.CabinClass = models.CabinBusiness
	_, err := s.SearchFlights(context.Background(), q)
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "CAI to PAR")
	assert.Contains(t, gen.prompt, "2025-12-20")
	assert.Contains(t, gen.prompt, cabinPriceBands[models.CabinBusiness])
}

func TestSyntheticFlightsMalformedOutputFails(t *testing.T) {
	for name, output := range map[string]string{
		"prose":    "here are some flights you might like",
		"bad time": `[{"carrier": "AF", "departure_at": "noonish", "arrival_at": "later"}]`,
	} {
		s := &SyntheticGenerator{Gen: &scriptedGenerator{output: output}}
		_, err := s.SearchFlights(context.Background(), parisQuery())
		assert.Error(t, err, name)
	}
}

func TestSyntheticGeneratorErrorPropagates(t *testing.T) {
	s := &SyntheticGenerator{Gen: &scriptedGenerator{err: errors.New("quota exceeded")}}
	_, err := s.SearchFlights(context.Background(), parisQuery())
	assert.Error(t, err)
	_, err = s.SearchHotels(context.Background(), models.HotelQuery{
		CityCode: "PAR", CheckIn: "2025-12-20", CheckOut: "2025-12-27",
	})
	assert.Error(t, err)
}

func TestSyntheticHotelsParsed(t *testing.T) {
	gen := &scriptedGenerator{output: `[
		{"name": "Hotel Lutece", "nightly_rate": 4100, "currency": "EGP"},
		{"name": "Gare du Nord Inn", "nightly_rate": 2800, "currency": "EGP"}
	]`}
	s := &SyntheticGenerator{Gen: gen}

	offers, err := s.SearchHotels(context.Background(), models.HotelQuery{
		CityCode: "PAR", CheckIn: "2025-12-20", CheckOut: "2025-12-27",
	})
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "PAR", offers[0].CityCode)
	assert.Equal(t, "2025-12-20", offers[0].CheckIn)
	assert.Equal(t, 7, offers[0].Nights())
}
