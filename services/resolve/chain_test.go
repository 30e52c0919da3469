package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voyago/database/repository/dataset"
	"voyago/models"
)

// stubFlightSource scripts one tier's behavior.
type stubFlightSource struct {
	provenance models.Provenance
	offers     []models.FlightOffer
	err        error
	delay      time.Duration
	calls      int
}

func (s *stubFlightSource) Provenance() models.Provenance { return s.provenance }

func (s *stubFlightSource) SearchFlights(ctx context.Context, _ models.FlightQuery) ([]models.FlightOffer, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.offers, s.err
}

type stubHotelSource struct {
	provenance models.Provenance
	offers     []models.HotelOffer
	err        error
}

func (s *stubHotelSource) Provenance() models.Provenance { return s.provenance }

func (s *stubHotelSource) SearchHotels(_ context.Context, _ models.HotelQuery) ([]models.HotelOffer, error) {
	return s.offers, s.err
}

func riyadhQuery() models.FlightQuery {
	return models.FlightQuery{
		Origin:        "CAI",
		Destination:   "RUH",
		DepartureDate: "2025-11-02",
		DurationDays:  5,
		CabinClass:    models.CabinEconomy,
	}
}

func oneFlight() []models.FlightOffer {
	return []models.FlightOffer{{
		Carrier:      "MS",
		FlightNumber: "MS641",
		Price:        9200,
		Currency:     "EGP",
	}}
}

func TestFlightChainFirstTierWins(t *testing.T) {
	first := &stubFlightSource{provenance: models.ProvenanceLive, offers: oneFlight()}
	second := &stubFlightSource{provenance: models.ProvenanceDataset, offers: oneFlight()}
	chain := NewFlightChain(zap.NewNop(),
		FlightTier{Source: first},
		FlightTier{Source: second},
	)

	offers, err := chain.Resolve(context.Background(), riyadhQuery())
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.ProvenanceLive, offers[0].Provenance)
	assert.Equal(t, 0, second.calls, "later tiers untouched once one succeeds")
}

func TestFlightChainAdvancesOnErrorAndEmpty(t *testing.T) {
	failing := &stubFlightSource{provenance: models.ProvenanceLive, err: ErrProviderUnavailable}
	empty := &stubFlightSource{provenance: models.ProvenanceDataset}
	winning := &stubFlightSource{provenance: models.ProvenanceSynthetic, offers: oneFlight()}
	chain := NewFlightChain(zap.NewNop(),
		FlightTier{Source: failing},
		FlightTier{Source: empty},
		FlightTier{Source: winning},
	)

	offers, err := chain.Resolve(context.Background(), riyadhQuery())
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceSynthetic, offers[0].Provenance)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
}

func TestFlightChainTierTimeoutAdvances(t *testing.T) {
	slow := &stubFlightSource{provenance: models.ProvenanceLive, offers: oneFlight(), delay: 200 * time.Millisecond}
	fast := &stubFlightSource{provenance: models.ProvenanceDataset, offers: oneFlight()}
	chain := NewFlightChain(zap.NewNop(),
		FlightTier{Source: slow, Timeout: 10 * time.Millisecond},
		FlightTier{Source: fast},
	)

	offers, err := chain.Resolve(context.Background(), riyadhQuery())
	require.NoError(t, err)
	assert.Equal(t, models.ProvenanceDataset, offers[0].Provenance)
}

func TestFlightChainExhaustion(t *testing.T) {
	failing := &stubFlightSource{provenance: models.ProvenanceLive, err: ErrProviderUnavailable}
	chain := NewFlightChain(zap.NewNop(), FlightTier{Source: failing})

	_, err := chain.Resolve(context.Background(), riyadhQuery())
	var exhausted *ResolutionExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "flight", exhausted.Leg)
}

func TestFlightChainRespectsParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := &stubFlightSource{provenance: models.ProvenanceDataset, offers: oneFlight()}
	chain := NewFlightChain(zap.NewNop(), FlightTier{Source: source})

	_, err := chain.Resolve(ctx, riyadhQuery())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, source.calls)
}

func TestDatasetTierServesSeededRiyadh(t *testing.T) {
	repo := dataset.NewSeededMemoryRepo()
	chain := NewFlightChain(zap.NewNop(),
		FlightTier{Source: &DatasetFlightSource{Table: repo}},
		FlightTier{Source: &RuleGenerator{}},
	)

	offers, err := chain.Resolve(context.Background(), riyadhQuery())
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	for _, o := range offers {
		assert.Equal(t, models.ProvenanceDataset, o.Provenance)
		assert.Equal(t, models.CabinEconomy, o.CabinClass)
	}
}

func TestDatasetMissFallsToRules(t *testing.T) {
	repo := dataset.NewSeededMemoryRepo()
	chain := NewFlightChain(zap.NewNop(),
		FlightTier{Source: &DatasetFlightSource{Table: repo}},
		FlightTier{Source: &RuleGenerator{}},
	)

	// Paris is absent from the dataset entirely.
	q := riyadhQuery()
	q.Destination = "PAR"
	offers, err := chain.Resolve(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	for _, o := range offers {
		assert.Equal(t, models.ProvenanceRule, o.Provenance)
	}
}

func TestHotelChainUnknownCityShortCircuits(t *testing.T) {
	repo := dataset.NewSeededMemoryRepo()
	tier := &stubHotelSource{provenance: models.ProvenanceRule, offers: []models.HotelOffer{{Name: "x"}}}
	chain := NewHotelChain(zap.NewNop(), repo, HotelTier{Source: tier})

	// Dubai has flights in the dataset but no hotel inventory at all.
	offers, err := chain.Resolve(context.Background(), models.HotelQuery{
		CityCode: "DXB", CheckIn: "2025-11-10", CheckOut: "2025-11-14",
	})
	require.NoError(t, err)
	assert.Nil(t, offers, "unknown city is a valid empty result, not an escalation")
}

func TestHotelChainKnownCityDateMissEscalates(t *testing.T) {
	repo := dataset.NewSeededMemoryRepo()
	chain := NewHotelChain(zap.NewNop(), repo,
		HotelTier{Source: &DatasetHotelSource{Table: repo}},
		HotelTier{Source: &RuleGenerator{}},
	)

	// Riyadh is in the directory but this stay is not seeded.
	offers, err := chain.Resolve(context.Background(), models.HotelQuery{
		CityCode: "RUH", CheckIn: "2026-02-01", CheckOut: "2026-02-04",
	})
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	for _, o := range offers {
		assert.Equal(t, models.ProvenanceRule, o.Provenance)
	}
}

func TestHotelChainDirectoryErrorKeepsResolving(t *testing.T) {
	failing := &failingDirectory{}
	tier := &stubHotelSource{provenance: models.ProvenanceRule, offers: []models.HotelOffer{{Name: "RUH Plaza"}}}
	chain := NewHotelChain(zap.NewNop(), failing, HotelTier{Source: tier})

	offers, err := chain.Resolve(context.Background(), models.HotelQuery{
		CityCode: "RUH", CheckIn: "2025-11-02", CheckOut: "2025-11-07",
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.ProvenanceRule, offers[0].Provenance)
}

type failingDirectory struct{}

func (failingDirectory) CityKnown(context.Context, string) (bool, error) {
	return false, errors.New("directory offline")
}
