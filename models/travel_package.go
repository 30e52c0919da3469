package models

// Package is a priced bundle of one flight offer and at most one hotel
// offer. Packages are immutable values assembled per request and never
// persisted.
type Package struct {
	ID         string      `json:"id"`
	Flight     FlightOffer `json:"flight"`
	Hotel      *HotelOffer `json:"hotel,omitempty"`
	Nights     int         `json:"nights"`
	TotalPrice float64     `json:"totalPrice"`
	Currency   string      `json:"currency"`
	Provenance string      `json:"provenance"` // e.g. "flight:dataset hotel:rule"
	Summary    string      `json:"summary"`
}
