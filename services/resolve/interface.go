// Package resolve implements the tiered data-resolution pipeline: live
// provider, offline dataset, synthetic generation, rule-based synthesis.
// Tiers share one source interface and are tried in order until one yields
// a non-empty result; every tier-local failure means "advance", never
// "surface".
package resolve

import (
	"context"
	"errors"
	"fmt"

	"voyago/models"
)

// FlightSource is one tier of the flight resolution chain.
type FlightSource interface {
	Provenance() models.Provenance
	SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error)
}

// HotelSource is one tier of the hotel resolution chain.
type HotelSource interface {
	Provenance() models.Provenance
	SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error)
}

// CityDirectory answers whether a city has hotel inventory at all. A city
// outside the directory resolves to "no hotels" without running the chain.
type CityDirectory interface {
	CityKnown(ctx context.Context, cityCode string) (bool, error)
}

// ErrProviderUnavailable covers every way the live tier can fail: bad
// credentials, timeout, empty result set, undecodable response. It is never
// surfaced to the user.
var ErrProviderUnavailable = errors.New("live provider unavailable")

// ResolutionExhaustedError means every tier fell through. The rule tier is
// total, so reaching this implies malformed inputs; the request fails with
// a generic retry message.
type ResolutionExhaustedError struct {
	Leg string // "flight" or "hotel"
}

func (e *ResolutionExhaustedError) Error() string {
	return fmt.Sprintf("%s resolution exhausted all tiers", e.Leg)
}
