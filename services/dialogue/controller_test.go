package dialogue

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
	"voyago/services/conversation"
	"voyago/services/intent"
	"voyago/services/resolve"
)

var testAnchor = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

func newTestController(t *testing.T, store conversation.Store) *Controller {
	t.Helper()
	repo := dataset.NewSeededMemoryRepo()
	flights := resolve.NewFlightChain(zap.NewNop(),
		resolve.FlightTier{Source: &resolve.DatasetFlightSource{Table: repo}},
		resolve.FlightTier{Source: &resolve.RuleGenerator{}},
	)
	hotels := resolve.NewHotelChain(zap.NewNop(), repo,
		resolve.HotelTier{Source: &resolve.DatasetHotelSource{Table: repo}},
		resolve.HotelTier{Source: &resolve.RuleGenerator{}},
	)
	extractor := &intent.KeywordExtractor{Now: testAnchor}
	gate := intent.Gate{HomeCity: "CAI"}
	return NewController(store, extractor, gate, flights, hotels, zap.NewNop())
}

func TestProcessMessageCompleteUtteranceYieldsPackages(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)

	resp, err := c.ProcessMessage(context.Background(),
		"t1", "I want to fly to Riyadh on 2025-11-02 for 5 nights in economy")
	require.NoError(t, err)

	assert.Equal(t, models.PhaseResponded, resp.Phase)
	assert.Empty(t, resp.FollowupQuestion)
	require.NotEmpty(t, resp.Packages)
	for _, p := range resp.Packages {
		assert.Equal(t, models.ProvenanceDataset, p.Flight.Provenance)
		require.NotNil(t, p.Hotel)
		assert.Equal(t, p.Flight.ArrivalDate(), p.Hotel.CheckIn)
		assert.Equal(t, 5, p.Nights)
	}
	// Origin was defaulted to the home city and echoed back.
	assert.Equal(t, "CAI", resp.Extracted.Origin)

	// The stored thread rests in the initial phase, ready for more input.
	thread, err := store.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseAwaitingInput, thread.Phase)
	assert.Zero(t, thread.FollowupCount)
}

func TestProcessMessageCollectsSlotsAcrossTurns(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()

	resp, err := c.ProcessMessage(ctx, "t1", "I want to travel")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseClarifying, resp.Phase)
	assert.Contains(t, resp.FollowupQuestion, "Which city")

	resp, err = c.ProcessMessage(ctx, "t1", "Riyadh")
	require.NoError(t, err)
	assert.Contains(t, resp.FollowupQuestion, "departure date")
	assert.Equal(t, "RUH", resp.Extracted.Destination)

	resp, err = c.ProcessMessage(ctx, "t1", "2025-11-02")
	require.NoError(t, err)
	assert.Contains(t, resp.FollowupQuestion, "days")

	resp, err = c.ProcessMessage(ctx, "t1", "5 nights")
	require.NoError(t, err)
	assert.Contains(t, resp.FollowupQuestion, "cabin")

	resp, err = c.ProcessMessage(ctx, "t1", "economy please")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseResponded, resp.Phase)
	assert.NotEmpty(t, resp.Packages)
}

func TestProcessMessageDubaiHasNoHotels(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)

	resp, err := c.ProcessMessage(context.Background(),
		"t1", "fly me to Dubai on 2025-11-10 for 4 nights in economy")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Packages)
	for _, p := range resp.Packages {
		assert.Nil(t, p.Hotel, "no hotel inventory for this city")
		assert.Contains(t, p.Provenance, "hotel:none")
	}
}

func TestProcessMessageUnknownDestinationFallsToGenerators(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)

	resp, err := c.ProcessMessage(context.Background(),
		"t1", "take me to Paris on 2025-12-20 for 7 nights in business")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Packages)
	for _, p := range resp.Packages {
		assert.Equal(t, models.ProvenanceRule, p.Flight.Provenance)
	}
}

func TestProcessMessageReplayLeavesSlotsUnchanged(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()
	utterance := "fly to Riyadh on 2025-11-02 for 5 nights in economy"

	_, err := c.ProcessMessage(ctx, "t1", utterance)
	require.NoError(t, err)
	first, err := store.Get(ctx, "t1")
	require.NoError(t, err)

	resp, err := c.ProcessMessage(ctx, "t1", utterance)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Packages)

	second, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, first.Slots, second.Slots, "replaying an applied message must not change slot state")
}

func TestProcessMessageOvernightArrivalGetsOwnHotels(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)

	// The curated London flights land on different calendar days: one the
	// departure day, one past midnight. Both must come back with a stay
	// starting on their own arrival date.
	resp, err := c.ProcessMessage(context.Background(),
		"t1", "London on 2025-12-20 for 7 nights in business")
	require.NoError(t, err)
	require.Len(t, resp.Packages, 2)

	arrivalDates := make(map[string]bool)
	for _, p := range resp.Packages {
		require.NotNil(t, p.Hotel, "flight %s should have a hotel", p.Flight.FlightNumber)
		assert.Equal(t, p.Flight.ArrivalDate(), p.Hotel.CheckIn)
		arrivalDates[p.Flight.ArrivalDate()] = true
	}
	assert.Len(t, arrivalDates, 2, "candidates land on two distinct days")
}

func TestProcessMessageCorrectionReplacesSlot(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()

	_, err := c.ProcessMessage(ctx, "t1", "trip to Riyadh")
	require.NoError(t, err)

	resp, err := c.ProcessMessage(ctx, "t1", "actually make it Jeddah")
	require.NoError(t, err)
	assert.Equal(t, "JED", resp.Extracted.Destination)
}

func TestProcessMessageFollowupCapTriggersRecap(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()

	var resp *models.ChatResponse
	var err error
	for i := 0; i < defaultFollowupCap+1; i++ {
		resp, err = c.ProcessMessage(ctx, "t1", "hmm")
		require.NoError(t, err)
	}
	assert.Contains(t, resp.FollowupQuestion, "I still need")
}

func TestProcessMessageFailedResolutionDoesNotSave(t *testing.T) {
	store := conversation.NewMemoryStore()
	repo := dataset.NewMemoryDatasetRepo(nil, nil, nil)
	// A chain with only the dataset tier and no data always exhausts.
	flights := resolve.NewFlightChain(zap.NewNop(),
		resolve.FlightTier{Source: &resolve.DatasetFlightSource{Table: repo}},
	)
	hotels := resolve.NewHotelChain(zap.NewNop(), repo,
		resolve.HotelTier{Source: &resolve.DatasetHotelSource{Table: repo}},
	)
	c := NewController(store, &intent.KeywordExtractor{Now: testAnchor},
		intent.Gate{HomeCity: "CAI"}, flights, hotels, zap.NewNop())
	ctx := context.Background()

	resp, err := c.ProcessMessage(ctx, "t1",
		"fly to Riyadh on 2025-11-02 for 5 nights in economy")
	require.NoError(t, err)
	assert.Empty(t, resp.Packages)
	assert.NotEmpty(t, resp.FollowupQuestion)

	// The failed turn left no trace; replaying it starts from clean state.
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string, models.Slots) (models.Slots, error) {
	return models.Slots{}, &intent.ExtractionError{Raw: "{", Err: errors.New("unexpected end of JSON")}
}

func TestProcessMessageExtractionErrorAsksRephrase(t *testing.T) {
	store := conversation.NewMemoryStore()
	repo := dataset.NewSeededMemoryRepo()
	flights := resolve.NewFlightChain(zap.NewNop(),
		resolve.FlightTier{Source: &resolve.RuleGenerator{}})
	hotels := resolve.NewHotelChain(zap.NewNop(), repo,
		resolve.HotelTier{Source: &resolve.RuleGenerator{}})
	c := NewController(store, failingExtractor{},
		intent.Gate{HomeCity: "CAI"}, flights, hotels, zap.NewNop())

	resp, err := c.ProcessMessage(context.Background(), "t1", "garbled")
	require.NoError(t, err)
	assert.Equal(t, models.PhaseClarifying, resp.Phase)
	assert.Contains(t, resp.FollowupQuestion, "rephrase")
}

func TestResetClearsThreadState(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()

	_, err := c.ProcessMessage(ctx, "t1", "trip to Riyadh")
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx, "t1"))

	thread, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.NewSlots(), thread.Slots)
	assert.Equal(t, models.PhaseAwaitingInput, thread.Phase)
	assert.Empty(t, thread.Messages)
}

func TestThreadsListsActiveIDs(t *testing.T) {
	store := conversation.NewMemoryStore()
	c := newTestController(t, store)
	ctx := context.Background()

	_, err := c.ProcessMessage(ctx, "a", "trip to Riyadh")
	require.NoError(t, err)
	_, err = c.ProcessMessage(ctx, "b", "trip to Jeddah")
	require.NoError(t, err)

	ids, err := c.Threads(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
