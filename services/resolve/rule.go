package resolve

import (
	"context"
	"fmt"
	"time"

	"voyago/models"
)

// RuleGenerator is the final tier. It is deterministic and total for any
// well-formed query, so the chain can always terminate with an answer.
type RuleGenerator struct{}

func (g *RuleGenerator) Provenance() models.Provenance { return models.ProvenanceRule }

var baseFares = map[string]map[string]float64{
	"CAI-RUH": {
		models.CabinEconomy:        9500,
		models.CabinPremiumEconomy: 16000,
		models.CabinBusiness:       29000,
		models.CabinFirst:          52000,
	},
	"CAI-JED": {
		models.CabinEconomy:        8800,
		models.CabinPremiumEconomy: 15200,
		models.CabinBusiness:       27500,
		models.CabinFirst:          49000,
	},
	"CAI-DXB": {
		models.CabinEconomy:        12500,
		models.CabinPremiumEconomy: 19500,
		models.CabinBusiness:       34000,
		models.CabinFirst:          58000,
	},
	"CAI-LON": {
		models.CabinEconomy:        14500,
		models.CabinPremiumEconomy: 22000,
		models.CabinBusiness:       41000,
		models.CabinFirst:          72000,
	},
}

var cabinDefaultFares = map[string]float64{
	models.CabinEconomy:        11000,
	models.CabinPremiumEconomy: 18000,
	models.CabinBusiness:       32000,
	models.CabinFirst:          55000,
}

var ruleCarriers = []string{"MS", "LH", "AF"}
var rulePriceVariants = []float64{1.0, 1.08, 1.15}
var ruleDepartureHours = []int{8, 13, 19}

func (g *RuleGenerator) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	dep, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("rule flight generation: bad departure date %q", q.DepartureDate)
	}
	if q.DurationDays <= 0 {
		return nil, fmt.Errorf("rule flight generation: bad duration %d", q.DurationDays)
	}
	if q.CabinClass == "" {
		return nil, fmt.Errorf("rule flight generation: missing cabin class")
	}

	base := cabinDefaultFares[q.CabinClass]
	if base == 0 {
		base = cabinDefaultFares[models.CabinEconomy]
	}
	if route, ok := baseFares[q.Origin+"-"+q.Destination]; ok {
		if fare, ok := route[q.CabinClass]; ok {
			base = fare
		}
	}

	// Longer stays and peak dates nudge the fare up, nothing more.
	base *= 1 + 0.02*float64(q.DurationDays)
	base *= 1 + 0.002*float64(dep.YearDay()%45)

	offers := make([]models.FlightOffer, 0, len(rulePriceVariants))
	for i, variant := range rulePriceVariants {
		depAt := time.Date(dep.Year(), dep.Month(), dep.Day(), ruleDepartureHours[i], 0, 0, 0, time.UTC)
		offers = append(offers, models.FlightOffer{
			Carrier:      ruleCarriers[i],
			FlightNumber: fmt.Sprintf("%s%d%02d", ruleCarriers[i], 100+dep.YearDay()%800, i),
			Price:        roundPrice(base * variant),
			Currency:     "EGP",
			DepartureAt:  depAt,
			ArrivalAt:    depAt.Add(4 * time.Hour),
			CabinClass:   q.CabinClass,
			FareBasis:    "RULE" + q.CabinClass[:1],
		})
	}
	return offers, nil
}

var cityNightlyBase = map[string]float64{
	"RUH": 1000,
	"JED": 900,
	"DXB": 1600,
	"LON": 3800,
	"CAI": 800,
}

var hotelNameSuffixes = []string{"Grand Hotel", "Plaza", "Airport Inn"}
var hotelRateVariants = []float64{1.3, 1.0, 0.8}

func (g *RuleGenerator) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	if nightsBetween(q.CheckIn, q.CheckOut) <= 0 {
		return nil, fmt.Errorf("rule hotel generation: bad stay %s..%s", q.CheckIn, q.CheckOut)
	}

	base, ok := cityNightlyBase[q.CityCode]
	if !ok {
		base = 1200
	}

	offers := make([]models.HotelOffer, 0, len(hotelNameSuffixes))
	for i, suffix := range hotelNameSuffixes {
		offers = append(offers, models.HotelOffer{
			Name:        q.CityCode + " " + suffix,
			CityCode:    q.CityCode,
			NightlyRate: roundPrice(base * hotelRateVariants[i]),
			Currency:    "EGP",
			CheckIn:     q.CheckIn,
			CheckOut:    q.CheckOut,
		})
	}
	return offers, nil
}

func roundPrice(p float64) float64 {
	return float64(int(p*100+0.5)) / 100
}
