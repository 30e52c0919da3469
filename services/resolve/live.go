package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"voyago/models"
)

// AmadeusClient is the live provider tier, speaking the Amadeus self-service
// API shape. Every failure mode (auth, timeout, empty set, undecodable
// body) collapses into ErrProviderUnavailable so the chain advances.
type AmadeusClient struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	httpc *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewAmadeusClient(baseURL, clientID, clientSecret string) *AmadeusClient {
	return &AmadeusClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		httpc:        &http.Client{},
	}
}

func (a *AmadeusClient) Provenance() models.Provenance { return models.ProvenanceLive }

// accessToken fetches (or reuses) a client-credentials token.
func (a *AmadeusClient) accessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && time.Now().Before(a.tokenExp.Add(-30*time.Second)) {
		return a.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.ClientID)
	form.Set("client_secret", a.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.AccessToken == "" {
		return "", fmt.Errorf("%w: malformed token response", ErrProviderUnavailable)
	}

	a.token = payload.AccessToken
	a.tokenExp = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return a.token, nil
}

func (a *AmadeusClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	token, err := a.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		a.mu.Lock()
		a.token = "" // force re-auth on the next attempt
		a.mu.Unlock()
		return fmt.Errorf("%w: authentication rejected (%d)", ErrProviderUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrProviderUnavailable, err)
	}
	return nil
}

type amadeusFlightPayload struct {
	Data []struct {
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		TravelerPricings []struct {
			FareDetailsBySegment []struct {
				Cabin     string `json:"cabin"`
				FareBasis string `json:"fareBasis"`
			} `json:"fareDetailsBySegment"`
		} `json:"travelerPricings"`
	} `json:"data"`
}

func parseAmadeusTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (a *AmadeusClient) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	dep, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad departure date %q", ErrProviderUnavailable, q.DepartureDate)
	}

	query := url.Values{}
	query.Set("originLocationCode", q.Origin)
	query.Set("destinationLocationCode", q.Destination)
	query.Set("departureDate", q.DepartureDate)
	query.Set("returnDate", dep.AddDate(0, 0, q.DurationDays).Format("2006-01-02"))
	query.Set("adults", "1")
	query.Set("travelClass", q.CabinClass)
	query.Set("currencyCode", "EGP")
	query.Set("max", "5")

	var payload amadeusFlightPayload
	if err := a.get(ctx, "/v2/shopping/flight-offers", query, &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty result set", ErrProviderUnavailable)
	}

	offers := make([]models.FlightOffer, 0, len(payload.Data))
	for _, d := range payload.Data {
		if len(d.Itineraries) == 0 || len(d.Itineraries[0].Segments) == 0 {
			return nil, fmt.Errorf("%w: offer without itinerary", ErrProviderUnavailable)
		}
		segments := d.Itineraries[0].Segments
		first, last := segments[0], segments[len(segments)-1]

		price, err := strconv.ParseFloat(d.Price.GrandTotal, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unparsable price %q", ErrProviderUnavailable, d.Price.GrandTotal)
		}
		depAt, err := parseAmadeusTime(first.Departure.At)
		if err != nil {
			return nil, fmt.Errorf("%w: unparsable departure time: %v", ErrProviderUnavailable, err)
		}
		arrAt, err := parseAmadeusTime(last.Arrival.At)
		if err != nil {
			return nil, fmt.Errorf("%w: unparsable arrival time: %v", ErrProviderUnavailable, err)
		}

		fareBasis := ""
		if len(d.TravelerPricings) > 0 && len(d.TravelerPricings[0].FareDetailsBySegment) > 0 {
			fareBasis = d.TravelerPricings[0].FareDetailsBySegment[0].FareBasis
		}

		offers = append(offers, models.FlightOffer{
			Carrier:      first.CarrierCode,
			FlightNumber: first.CarrierCode + first.Number,
			Price:        price,
			Currency:     d.Price.Currency,
			DepartureAt:  depAt,
			ArrivalAt:    arrAt,
			CabinClass:   q.CabinClass,
			FareBasis:    fareBasis,
		})
	}
	return offers, nil
}

type amadeusHotelPayload struct {
	Data []struct {
		Hotel struct {
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
		} `json:"hotel"`
		Offers []struct {
			CheckInDate  string `json:"checkInDate"`
			CheckOutDate string `json:"checkOutDate"`
			Price        struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (a *AmadeusClient) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	nights := nightsBetween(q.CheckIn, q.CheckOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: bad stay %s..%s", ErrProviderUnavailable, q.CheckIn, q.CheckOut)
	}

	query := url.Values{}
	query.Set("cityCode", q.CityCode)
	query.Set("checkInDate", q.CheckIn)
	query.Set("checkOutDate", q.CheckOut)
	query.Set("adults", "1")
	query.Set("currency", "EGP")

	var payload amadeusHotelPayload
	if err := a.get(ctx, "/v3/shopping/hotel-offers", query, &payload); err != nil {
		return nil, err
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%w: empty result set", ErrProviderUnavailable)
	}

	offers := make([]models.HotelOffer, 0, len(payload.Data))
	for _, d := range payload.Data {
		if len(d.Offers) == 0 {
			continue
		}
		best := d.Offers[0]
		total, err := strconv.ParseFloat(best.Price.Total, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: unparsable hotel price %q", ErrProviderUnavailable, best.Price.Total)
		}
		offers = append(offers, models.HotelOffer{
			Name:        d.Hotel.Name,
			CityCode:    q.CityCode,
			NightlyRate: total / float64(nights),
			Currency:    best.Price.Currency,
			CheckIn:     q.CheckIn,
			CheckOut:    q.CheckOut,
		})
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: no bookable offers", ErrProviderUnavailable)
	}
	return offers, nil
}

func nightsBetween(checkIn, checkOut string) int {
	in, err1 := time.Parse("2006-01-02", checkIn)
	out, err2 := time.Parse("2006-01-02", checkOut)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}
