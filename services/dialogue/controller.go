// Package dialogue orchestrates one chat turn: load the thread, extract
// slots, either ask a follow-up or resolve and assemble packages, then
// persist the thread exactly once.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"voyago/models"
	"voyago/services/assembler"
	"voyago/services/conversation"
	"voyago/services/intent"
	"voyago/services/resolve"
)

const defaultFollowupCap = 6

const rephrasePrompt = "Sorry, I couldn't make sense of that. Could you rephrase your travel request?"
const retryPrompt = "I couldn't complete the search just now. Please try again in a moment."

// Controller runs the dialogue state machine. Turns on the same thread are
// serialized by a per-thread mutex; turns on different threads run freely.
type Controller struct {
	store     conversation.Store
	extractor intent.Extractor
	gate      intent.Gate
	flights   *resolve.FlightChain
	hotels    *resolve.HotelChain
	log       *zap.Logger

	followupCap int
	locks       sync.Map // threadID -> *sync.Mutex
}

func NewController(store conversation.Store, extractor intent.Extractor, gate intent.Gate,
	flights *resolve.FlightChain, hotels *resolve.HotelChain, log *zap.Logger) *Controller {
	return &Controller{
		store:       store,
		extractor:   extractor,
		gate:        gate,
		flights:     flights,
		hotels:      hotels,
		log:         log,
		followupCap: defaultFollowupCap,
	}
}

func (c *Controller) lockThread(threadID string) *sync.Mutex {
	mu, _ := c.locks.LoadOrStore(threadID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ProcessMessage handles one user turn end to end. The thread is saved at
// most once per turn, after the outcome is known; a failed resolution
// leaves the stored thread untouched so the user can simply retry.
func (c *Controller) ProcessMessage(ctx context.Context, threadID, message string) (*models.ChatResponse, error) {
	mu := c.lockThread(threadID)
	mu.Lock()
	defer mu.Unlock()

	thread, err := c.store.Get(ctx, threadID)
	if err != nil {
		return nil, err
	}
	thread.Append("user", message)
	thread.Phase = Advance(thread.Phase, EventUserMessage)

	slots, err := c.extractor.Extract(ctx, message, thread.Slots)
	if err != nil {
		var extErr *intent.ExtractionError
		if !errors.As(err, &extErr) {
			return nil, fmt.Errorf("extract slots: %w", err)
		}
		// Malformed model output is the user's problem to route around,
		// not a server error. Slots stay as they were.
		c.log.Warn("extraction produced unusable output",
			zap.String("threadID", threadID), zap.Error(err))
		return c.askFollowup(ctx, thread, rephrasePrompt)
	}
	thread.Slots = slots

	decision := c.gate.Evaluate(thread.Slots)
	if !decision.Ready {
		question := decision.Question
		if thread.FollowupCount+1 > c.followupCap {
			question = c.gate.RecapQuestion(thread.Slots)
		}
		return c.askFollowup(ctx, thread, question)
	}
	if decision.DefaultedOrigin != "" {
		thread.Slots.Origin = models.KnownString(decision.DefaultedOrigin)
	}
	thread.Phase = Advance(thread.Phase, EventReady)

	query := models.FlightQuery{
		Origin:        thread.Slots.Origin.Value,
		Destination:   thread.Slots.Destination.Value,
		DepartureDate: thread.Slots.DepartureDate.Value,
		DurationDays:  thread.Slots.Duration.Value,
		CabinClass:    thread.Slots.CabinClass.Value,
	}

	flights, err := c.flights.Resolve(ctx, query)
	if err != nil {
		var exhausted *resolve.ResolutionExhaustedError
		if errors.As(err, &exhausted) {
			c.log.Error("flight resolution exhausted",
				zap.String("threadID", threadID),
				zap.String("destination", query.Destination))
			return &models.ChatResponse{
				ThreadID:         threadID,
				Phase:            models.PhaseAwaitingInput,
				FollowupQuestion: retryPrompt,
				Extracted:        thread.Slots.Snapshot(),
			}, nil
		}
		return nil, fmt.Errorf("resolve flights: %w", err)
	}
	thread.Phase = Advance(thread.Phase, EventResolved)

	hotels := c.resolveHotels(ctx, threadID, query, flights)
	packages := assembler.Assemble(flights, hotels, query.DurationDays)
	thread.Phase = Advance(thread.Phase, EventAssembled)

	summary := fmt.Sprintf("Found %d package(s) for your trip to %s.", len(packages), query.Destination)
	if best := bestSummary(packages); best != "" {
		summary += " Best option: " + best
	}
	thread.Append("assistant", summary)
	thread.FollowupCount = 0

	response := &models.ChatResponse{
		ThreadID:  threadID,
		Phase:     thread.Phase,
		Packages:  packages,
		Extracted: thread.Slots.Snapshot(),
	}

	thread.Phase = Advance(thread.Phase, EventTurnFinished)
	if err := c.store.Save(ctx, thread); err != nil {
		return nil, err
	}
	return response, nil
}

// resolveHotels never fails the turn: hotels are optional, flights are not.
// Flight candidates may land on different calendar days (overnight legs), so
// inventory is resolved once per distinct arrival date.
func (c *Controller) resolveHotels(ctx context.Context, threadID string, q models.FlightQuery, flights []models.FlightOffer) []models.HotelOffer {
	if len(flights) > assembler.MaxFlights {
		flights = flights[:assembler.MaxFlights]
	}

	var hotels []models.HotelOffer
	seen := make(map[string]bool, len(flights))
	for _, flight := range flights {
		checkIn := flight.ArrivalDate()
		if seen[checkIn] {
			continue
		}
		seen[checkIn] = true

		arrival, err := time.Parse("2006-01-02", checkIn)
		if err != nil {
			c.log.Warn("unparsable flight arrival date",
				zap.String("threadID", threadID), zap.String("arrival", checkIn))
			continue
		}
		hotelQuery := models.HotelQuery{
			CityCode: q.Destination,
			CheckIn:  checkIn,
			CheckOut: arrival.AddDate(0, 0, q.DurationDays).Format("2006-01-02"),
		}
		got, err := c.hotels.Resolve(ctx, hotelQuery)
		if err != nil {
			c.log.Warn("hotel resolution failed for arrival date, continuing",
				zap.String("threadID", threadID),
				zap.String("city", hotelQuery.CityCode),
				zap.String("checkIn", checkIn),
				zap.Error(err))
			continue
		}
		hotels = append(hotels, got...)
	}
	return hotels
}

func (c *Controller) askFollowup(ctx context.Context, thread *models.Thread, question string) (*models.ChatResponse, error) {
	thread.FollowupCount++
	thread.Append("assistant", question)
	thread.Phase = Advance(thread.Phase, EventNeedsInfo)
	if err := c.store.Save(ctx, thread); err != nil {
		return nil, err
	}
	return &models.ChatResponse{
		ThreadID:         thread.ID,
		Phase:            thread.Phase,
		FollowupQuestion: question,
		Extracted:        thread.Slots.Snapshot(),
	}, nil
}

// Reset wipes one thread's state; the next message starts a fresh dialogue.
func (c *Controller) Reset(ctx context.Context, threadID string) error {
	mu := c.lockThread(threadID)
	mu.Lock()
	defer mu.Unlock()
	return c.store.Reset(ctx, threadID)
}

// Threads lists the IDs of threads currently held by the store.
func (c *Controller) Threads(ctx context.Context) ([]string, error) {
	return c.store.List(ctx)
}

func bestSummary(packages []models.Package) string {
	if len(packages) == 0 {
		return ""
	}
	return packages[0].Summary
}
