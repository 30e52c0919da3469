package models

import "time"

// Provenance records which resolution tier produced an offer.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceDataset   Provenance = "dataset"
	ProvenanceSynthetic Provenance = "synthetic"
	ProvenanceRule      Provenance = "rule"
)

// FlightOffer is one priced round-trip flight candidate.
type FlightOffer struct {
	Carrier      string     `json:"carrier" bson:"carrier"`
	FlightNumber string     `json:"flightNumber" bson:"flightNumber"`
	Price        float64    `json:"price" bson:"price"`
	Currency     string     `json:"currency" bson:"currency"`
	DepartureAt  time.Time  `json:"departureAt" bson:"departureAt"`
	ArrivalAt    time.Time  `json:"arrivalAt" bson:"arrivalAt"`
	CabinClass   string     `json:"cabinClass" bson:"cabinClass"`
	FareBasis    string     `json:"fareBasis" bson:"fareBasis"`
	Provenance   Provenance `json:"provenance" bson:"provenance"`
}

// ArrivalDate is the flight's arrival calendar date, which fixes the hotel
// check-in for any package built around this flight.
func (f FlightOffer) ArrivalDate() string {
	return f.ArrivalAt.Format("2006-01-02")
}

// HotelOffer is one priced hotel stay candidate. Check-in/check-out are
// calendar dates derived from the paired flight.
type HotelOffer struct {
	Name        string     `json:"name" bson:"name"`
	CityCode    string     `json:"cityCode" bson:"cityCode"`
	NightlyRate float64    `json:"nightlyRate" bson:"nightlyRate"`
	Currency    string     `json:"currency" bson:"currency"`
	CheckIn     string     `json:"checkIn" bson:"checkIn"`
	CheckOut    string     `json:"checkOut" bson:"checkOut"`
	Provenance  Provenance `json:"provenance" bson:"provenance"`
}

// Nights returns the length of the stay.
func (h HotelOffer) Nights() int {
	in, err1 := time.Parse("2006-01-02", h.CheckIn)
	out, err2 := time.Parse("2006-01-02", h.CheckOut)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

// Total is the full price of the stay.
func (h HotelOffer) Total() float64 {
	return h.NightlyRate * float64(h.Nights())
}

// FlightQuery is the resolution key for flight offers. The offline dataset
// is keyed by destination, date, duration and cabin; origin matters only to
// the live provider and the generators.
type FlightQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"` // YYYY-MM-DD
	DurationDays  int    `json:"durationDays"`
	CabinClass    string `json:"cabinClass"`
}

// HotelQuery is the resolution key for hotel offers.
type HotelQuery struct {
	CityCode string `json:"cityCode"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}
