package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"voyago/models"
	"voyago/services/genai"
)

// SyntheticGenerator produces plausible offers from a language model when
// neither the live provider nor the dataset had anything. Output is taken
// as-is; nothing checks the prices for plausibility.
type SyntheticGenerator struct {
	Gen genai.TextGenerator
}

func (s *SyntheticGenerator) Provenance() models.Provenance { return models.ProvenanceSynthetic }

var cabinPriceBands = map[string]string{
	models.CabinEconomy:        "8000-15000",
	models.CabinPremiumEconomy: "15000-25000",
	models.CabinBusiness:       "25000-45000",
	models.CabinFirst:          "45000-80000",
}

type syntheticFlight struct {
	Carrier      string  `json:"carrier"`
	FlightNumber string  `json:"flight_number"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DepartureAt  string  `json:"departure_at"`
	ArrivalAt    string  `json:"arrival_at"`
	FareBasis    string  `json:"fare_basis"`
}

type syntheticHotel struct {
	Name        string  `json:"name"`
	NightlyRate float64 `json:"nightly_rate"`
	Currency    string  `json:"currency"`
}

func (s *SyntheticGenerator) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	band, ok := cabinPriceBands[q.CabinClass]
	if !ok {
		band = cabinPriceBands[models.CabinEconomy]
	}

	var b strings.Builder
	b.WriteString("Generate exactly 3 realistic one-way flight offers as a JSON array.\n")
	fmt.Fprintf(&b, "Route: %s to %s on %s, cabin %s.\n", q.Origin, q.Destination, q.DepartureDate, q.CabinClass)
	fmt.Fprintf(&b, "Prices in EGP, within the band %s for this cabin.\n", band)
	b.WriteString("Each element must have keys: carrier (2-letter IATA), flight_number, price (number), ")
	b.WriteString("currency (\"EGP\"), departure_at, arrival_at (both \"2006-01-02T15:04:05\" format, ")
	b.WriteString("arriving the same calendar day), fare_basis.\n")
	b.WriteString("Respond with ONLY the JSON array, no prose, no markdown fences.")

	raw, err := s.Gen.GenerateContent(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("synthetic flight generation: %w", err)
	}

	var rows []syntheticFlight
	if err := json.Unmarshal([]byte(stripFences(raw)), &rows); err != nil {
		return nil, fmt.Errorf("synthetic flight generation: malformed output: %w", err)
	}

	offers := make([]models.FlightOffer, 0, len(rows))
	for _, r := range rows {
		dep, err := time.Parse("2006-01-02T15:04:05", r.DepartureAt)
		if err != nil {
			return nil, fmt.Errorf("synthetic flight generation: bad departure_at %q", r.DepartureAt)
		}
		arr, err := time.Parse("2006-01-02T15:04:05", r.ArrivalAt)
		if err != nil {
			return nil, fmt.Errorf("synthetic flight generation: bad arrival_at %q", r.ArrivalAt)
		}
		offers = append(offers, models.FlightOffer{
			Carrier:      r.Carrier,
			FlightNumber: r.FlightNumber,
			Price:        r.Price,
			Currency:     r.Currency,
			DepartureAt:  dep,
			ArrivalAt:    arr,
			CabinClass:   q.CabinClass,
			FareBasis:    r.FareBasis,
		})
	}
	return offers, nil
}

func (s *SyntheticGenerator) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	var b strings.Builder
	b.WriteString("Generate exactly 3 realistic hotel offers as a JSON array.\n")
	fmt.Fprintf(&b, "City code: %s, check-in %s, check-out %s.\n", q.CityCode, q.CheckIn, q.CheckOut)
	b.WriteString("Each element must have keys: name, nightly_rate (number, EGP, between 600 and 5000), ")
	b.WriteString("currency (\"EGP\").\n")
	b.WriteString("Respond with ONLY the JSON array, no prose, no markdown fences.")

	raw, err := s.Gen.GenerateContent(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("synthetic hotel generation: %w", err)
	}

	var rows []syntheticHotel
	if err := json.Unmarshal([]byte(stripFences(raw)), &rows); err != nil {
		return nil, fmt.Errorf("synthetic hotel generation: malformed output: %w", err)
	}

	offers := make([]models.HotelOffer, 0, len(rows))
	for _, r := range rows {
		offers = append(offers, models.HotelOffer{
			Name:        r.Name,
			CityCode:    q.CityCode,
			NightlyRate: r.NightlyRate,
			Currency:    r.Currency,
			CheckIn:     q.CheckIn,
			CheckOut:    q.CheckOut,
		})
	}
	return offers, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
