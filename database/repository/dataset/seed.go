package dataset

import (
	"context"
	"fmt"
	"time"

	"voyago/models"

	"go.mongodb.org/mongo-driver/bson"
)

func dt(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// SeedFlights is the curated flight table. Keys follow the resolution key:
// destination, departure date, duration nights, cabin class.
var SeedFlights = []FlightRow{
	// Cairo -> Riyadh, the best-covered route in the curated data.
	{Destination: "RUH", DepartureDate: "2025-11-02", DurationDays: 5, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "MS", FlightNumber: "MS641", Price: 9200, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 2, 8, 40), ArrivalAt: dt(2025, time.November, 2, 12, 5),
		CabinClass: models.CabinEconomy, FareBasis: "YRTEG",
	}},
	{Destination: "RUH", DepartureDate: "2025-11-02", DurationDays: 5, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "SV", FlightNumber: "SV308", Price: 10450, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 2, 13, 15), ArrivalAt: dt(2025, time.November, 2, 16, 35),
		CabinClass: models.CabinEconomy, FareBasis: "VLREG",
	}},
	{Destination: "RUH", DepartureDate: "2025-11-02", DurationDays: 5, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "NE", FlightNumber: "NE121", Price: 8750, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 2, 19, 50), ArrivalAt: dt(2025, time.November, 2, 23, 10),
		CabinClass: models.CabinEconomy, FareBasis: "OBASIC",
	}},
	{Destination: "RUH", DepartureDate: "2025-11-02", DurationDays: 5, CabinClass: models.CabinBusiness, Offer: models.FlightOffer{
		Carrier: "MS", FlightNumber: "MS641", Price: 28400, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 2, 8, 40), ArrivalAt: dt(2025, time.November, 2, 12, 5),
		CabinClass: models.CabinBusiness, FareBasis: "JFLEX",
	}},

	// Cairo -> Dubai. Flights are curated but the city has no hotel
	// inventory, so Dubai packages come back flight-only.
	{Destination: "DXB", DepartureDate: "2025-11-10", DurationDays: 4, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "MS", FlightNumber: "MS910", Price: 11600, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 10, 9, 25), ArrivalAt: dt(2025, time.November, 10, 14, 45),
		CabinClass: models.CabinEconomy, FareBasis: "YRTEG",
	}},
	{Destination: "DXB", DepartureDate: "2025-11-10", DurationDays: 4, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "EK", FlightNumber: "EK928", Price: 13250, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 10, 15, 0), ArrivalAt: dt(2025, time.November, 10, 20, 20),
		CabinClass: models.CabinEconomy, FareBasis: "ULOWEG",
	}},

	// Cairo -> Jeddah.
	{Destination: "JED", DepartureDate: "2025-11-05", DurationDays: 3, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "MS", FlightNumber: "MS663", Price: 8100, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 5, 7, 10), ArrivalAt: dt(2025, time.November, 5, 9, 40),
		CabinClass: models.CabinEconomy, FareBasis: "YRTEG",
	}},
	{Destination: "JED", DepartureDate: "2025-11-05", DurationDays: 3, CabinClass: models.CabinEconomy, Offer: models.FlightOffer{
		Carrier: "SV", FlightNumber: "SV318", Price: 9350, Currency: "EGP",
		DepartureAt: dt(2025, time.November, 5, 12, 30), ArrivalAt: dt(2025, time.November, 5, 15, 0),
		CabinClass: models.CabinEconomy, FareBasis: "VLREG",
	}},

	// Cairo -> London, long-haul business sample.
	{Destination: "LON", DepartureDate: "2025-12-20", DurationDays: 7, CabinClass: models.CabinBusiness, Offer: models.FlightOffer{
		Carrier: "BA", FlightNumber: "BA154", Price: 68900, Currency: "EGP",
		DepartureAt: dt(2025, time.December, 20, 10, 5), ArrivalAt: dt(2025, time.December, 20, 14, 30),
		CabinClass: models.CabinBusiness, FareBasis: "JFLEX",
	}},
	{Destination: "LON", DepartureDate: "2025-12-20", DurationDays: 7, CabinClass: models.CabinBusiness, Offer: models.FlightOffer{
		Carrier: "MS", FlightNumber: "MS777", Price: 61200, Currency: "EGP",
		DepartureAt: dt(2025, time.December, 20, 23, 45), ArrivalAt: dt(2025, time.December, 21, 4, 15),
		CabinClass: models.CabinBusiness, FareBasis: "DPROMO",
	}},
}

// SeedCities is the hotel city directory. Dubai and Paris are deliberately
// absent: Dubai has no curated hotel inventory, Paris is not curated at all.
var SeedCities = []CityRow{
	{CityCode: "RUH", Hotels: []string{"Riyadh Palace Hotel", "Al Faisaliah Suites", "Olaya Grand Inn"}},
	{CityCode: "JED", Hotels: []string{"Jeddah Corniche Hotel", "Red Sea Residence"}},
	{CityCode: "LON", Hotels: []string{"The Strand House", "Kensington Park Hotel"}},
	{CityCode: "CAI", Hotels: []string{"Nile View Hotel", "Zamalek Garden Suites"}},
}

// SeedHotels is the curated hotel-offer table, keyed to the stays the
// curated flights imply (check-in on arrival, check-out after the stay).
var SeedHotels = []HotelRow{
	{CityCode: "RUH", CheckIn: "2025-11-02", CheckOut: "2025-11-07", Offer: models.HotelOffer{
		Name: "Riyadh Palace Hotel", CityCode: "RUH", NightlyRate: 950, Currency: "EGP",
		CheckIn: "2025-11-02", CheckOut: "2025-11-07",
	}},
	{CityCode: "RUH", CheckIn: "2025-11-02", CheckOut: "2025-11-07", Offer: models.HotelOffer{
		Name: "Al Faisaliah Suites", CityCode: "RUH", NightlyRate: 1480, Currency: "EGP",
		CheckIn: "2025-11-02", CheckOut: "2025-11-07",
	}},
	{CityCode: "RUH", CheckIn: "2025-11-02", CheckOut: "2025-11-07", Offer: models.HotelOffer{
		Name: "Olaya Grand Inn", CityCode: "RUH", NightlyRate: 2240, Currency: "EGP",
		CheckIn: "2025-11-02", CheckOut: "2025-11-07",
	}},
	{CityCode: "JED", CheckIn: "2025-11-05", CheckOut: "2025-11-08", Offer: models.HotelOffer{
		Name: "Jeddah Corniche Hotel", CityCode: "JED", NightlyRate: 1120, Currency: "EGP",
		CheckIn: "2025-11-05", CheckOut: "2025-11-08",
	}},
	{CityCode: "JED", CheckIn: "2025-11-05", CheckOut: "2025-11-08", Offer: models.HotelOffer{
		Name: "Red Sea Residence", CityCode: "JED", NightlyRate: 860, Currency: "EGP",
		CheckIn: "2025-11-05", CheckOut: "2025-11-08",
	}},
	{CityCode: "LON", CheckIn: "2025-12-20", CheckOut: "2025-12-27", Offer: models.HotelOffer{
		Name: "The Strand House", CityCode: "LON", NightlyRate: 4300, Currency: "EGP",
		CheckIn: "2025-12-20", CheckOut: "2025-12-27",
	}},
	{CityCode: "LON", CheckIn: "2025-12-20", CheckOut: "2025-12-27", Offer: models.HotelOffer{
		Name: "Kensington Park Hotel", CityCode: "LON", NightlyRate: 3650, Currency: "EGP",
		CheckIn: "2025-12-20", CheckOut: "2025-12-27",
	}},
}

// EnsureSeed loads the curated records into Mongo when the tables are empty.
func (r *MongoDatasetRepo) EnsureSeed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := r.flights.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if n > 0 {
		return nil
	}

	flightDocs := make([]interface{}, 0, len(SeedFlights))
	for _, row := range SeedFlights {
		flightDocs = append(flightDocs, row)
	}
	if _, err := r.flights.InsertMany(ctx, flightDocs); err != nil {
		return fmt.Errorf("seed flight_offers: %w", err)
	}

	hotelDocs := make([]interface{}, 0, len(SeedHotels))
	for _, row := range SeedHotels {
		hotelDocs = append(hotelDocs, row)
	}
	if _, err := r.hotels.InsertMany(ctx, hotelDocs); err != nil {
		return fmt.Errorf("seed hotel_offers: %w", err)
	}

	cityDocs := make([]interface{}, 0, len(SeedCities))
	for _, row := range SeedCities {
		cityDocs = append(cityDocs, row)
	}
	if _, err := r.cities.InsertMany(ctx, cityDocs); err != nil {
		return fmt.Errorf("seed city_hotels: %w", err)
	}
	return nil
}
