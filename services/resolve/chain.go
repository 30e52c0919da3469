package resolve

import (
	"context"
	"time"

	"voyago/models"

	"go.uber.org/zap"
)

const defaultTierTimeout = 10 * time.Second

// FlightTier pairs a source with its attempt timeout. On timeout the chain
// advances; it never retries the same tier.
type FlightTier struct {
	Source  FlightSource
	Timeout time.Duration
}

// HotelTier pairs a hotel source with its attempt timeout.
type HotelTier struct {
	Source  HotelSource
	Timeout time.Duration
}

// FlightChain resolves flight offers through its tiers in order.
type FlightChain struct {
	tiers []FlightTier
	log   *zap.Logger
}

func NewFlightChain(log *zap.Logger, tiers ...FlightTier) *FlightChain {
	return &FlightChain{tiers: tiers, log: log}
}

// Resolve returns the first tier's non-empty result, stamped with that
// tier's provenance.
func (c *FlightChain) Resolve(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	for _, tier := range c.tiers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		offers, err := searchTier(ctx, tier.Timeout, func(tctx context.Context) ([]models.FlightOffer, error) {
			return tier.Source.SearchFlights(tctx, q)
		})
		if err != nil {
			c.log.Debug("flight tier fell through",
				zap.String("tier", string(tier.Source.Provenance())),
				zap.String("destination", q.Destination),
				zap.Error(err))
			continue
		}
		if len(offers) == 0 {
			c.log.Debug("flight tier returned nothing",
				zap.String("tier", string(tier.Source.Provenance())),
				zap.String("destination", q.Destination))
			continue
		}
		for i := range offers {
			offers[i].Provenance = tier.Source.Provenance()
		}
		return offers, nil
	}
	return nil, &ResolutionExhaustedError{Leg: "flight"}
}

// HotelChain resolves hotel offers. It consults the city directory first:
// a city with no inventory yields an empty, valid result instead of
// escalating through the tiers.
type HotelChain struct {
	tiers     []HotelTier
	directory CityDirectory
	log       *zap.Logger
}

func NewHotelChain(log *zap.Logger, directory CityDirectory, tiers ...HotelTier) *HotelChain {
	return &HotelChain{tiers: tiers, directory: directory, log: log}
}

func (c *HotelChain) Resolve(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	known, err := c.directory.CityKnown(ctx, q.CityCode)
	if err != nil {
		// Directory trouble is not a "no hotels" signal; keep resolving.
		c.log.Warn("hotel city directory lookup failed", zap.String("city", q.CityCode), zap.Error(err))
	} else if !known {
		c.log.Debug("city has no hotel inventory", zap.String("city", q.CityCode))
		return nil, nil
	}

	for _, tier := range c.tiers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		offers, err := searchTier(ctx, tier.Timeout, func(tctx context.Context) ([]models.HotelOffer, error) {
			return tier.Source.SearchHotels(tctx, q)
		})
		if err != nil {
			c.log.Debug("hotel tier fell through",
				zap.String("tier", string(tier.Source.Provenance())),
				zap.String("city", q.CityCode),
				zap.Error(err))
			continue
		}
		if len(offers) == 0 {
			continue
		}
		for i := range offers {
			offers[i].Provenance = tier.Source.Provenance()
		}
		return offers, nil
	}
	return nil, &ResolutionExhaustedError{Leg: "hotel"}
}

// searchTier runs one attempt under its own deadline.
func searchTier[T any](ctx context.Context, timeout time.Duration, search func(context.Context) ([]T, error)) ([]T, error) {
	if timeout <= 0 {
		timeout = defaultTierTimeout
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return search(tctx)
}
