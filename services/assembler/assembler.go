// Package assembler pairs resolved flight and hotel offers into priced
// travel packages. It is pure: no I/O, no clock, no randomness beyond the
// generated package IDs.
package assembler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"voyago/models"
)

// MaxFlights bounds the flight candidates per request; callers resolving
// hotel inventory per arrival date use the same bound.
const MaxFlights = 5

const maxHotels = 10

// Assemble builds one package per flight, pairing each flight with the
// cheapest hotel whose stay starts the day the flight arrives and runs for
// the requested number of nights. A flight with no compatible hotel still
// yields a package, flight-only. Results are sorted by total price
// ascending, ties broken by earlier departure.
func Assemble(flights []models.FlightOffer, hotels []models.HotelOffer, durationDays int) []models.Package {
	if len(flights) > MaxFlights {
		flights = flights[:MaxFlights]
	}
	if len(hotels) > maxHotels {
		hotels = hotels[:maxHotels]
	}

	packages := make([]models.Package, 0, len(flights))
	for _, flight := range flights {
		hotel := cheapestCompatible(hotels, flight, durationDays)

		total := flight.Price
		provenance := "flight:" + string(flight.Provenance)
		if hotel != nil {
			total += hotel.Total()
			provenance += " hotel:" + string(hotel.Provenance)
		} else {
			provenance += " hotel:none"
		}

		packages = append(packages, models.Package{
			ID:         uuid.NewString(),
			Flight:     flight,
			Hotel:      hotel,
			Nights:     durationDays,
			TotalPrice: total,
			Currency:   flight.Currency,
			Provenance: provenance,
			Summary:    summarize(flight, hotel, durationDays, total),
		})
	}

	sort.SliceStable(packages, func(i, j int) bool {
		if packages[i].TotalPrice != packages[j].TotalPrice {
			return packages[i].TotalPrice < packages[j].TotalPrice
		}
		return packages[i].Flight.DepartureAt.Before(packages[j].Flight.DepartureAt)
	})
	return packages
}

// cheapestCompatible finds the cheapest hotel whose check-in matches the
// flight's arrival date and whose check-out lands durationDays later.
func cheapestCompatible(hotels []models.HotelOffer, flight models.FlightOffer, durationDays int) *models.HotelOffer {
	checkIn := flight.ArrivalDate()
	arrival, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return nil
	}
	checkOut := arrival.AddDate(0, 0, durationDays).Format("2006-01-02")

	var best *models.HotelOffer
	for i := range hotels {
		h := &hotels[i]
		if h.CheckIn != checkIn || h.CheckOut != checkOut {
			continue
		}
		if best == nil || h.Total() < best.Total() {
			best = h
		}
	}
	if best == nil {
		return nil
	}
	copied := *best
	return &copied
}

func summarize(flight models.FlightOffer, hotel *models.HotelOffer, durationDays int, total float64) string {
	if hotel == nil {
		return fmt.Sprintf("%s %s departing %s, no hotel included. Total %.0f %s.",
			flight.Carrier, flight.FlightNumber,
			flight.DepartureAt.Format("2006-01-02 15:04"), total, flight.Currency)
	}
	return fmt.Sprintf("%s %s departing %s, %d nights at %s. Total %.0f %s.",
		flight.Carrier, flight.FlightNumber,
		flight.DepartureAt.Format("2006-01-02 15:04"),
		durationDays, hotel.Name, total, flight.Currency)
}
