package resolve

import (
	"context"
	"fmt"

	"voyago/models"
)

// FlightTable is the slice of the dataset repository the flight tier needs.
type FlightTable interface {
	FlightOffers(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error)
}

// HotelTable is the slice of the dataset repository the hotel tier needs.
type HotelTable interface {
	HotelOffers(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error)
}

// DatasetFlightSource serves offers from the offline dataset by exact key.
type DatasetFlightSource struct {
	Table FlightTable
}

func (s *DatasetFlightSource) Provenance() models.Provenance { return models.ProvenanceDataset }

func (s *DatasetFlightSource) SearchFlights(ctx context.Context, q models.FlightQuery) ([]models.FlightOffer, error) {
	offers, err := s.Table.FlightOffers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dataset flight lookup: %w", err)
	}
	return offers, nil
}

// DatasetHotelSource serves hotel offers from the offline dataset by exact key.
type DatasetHotelSource struct {
	Table HotelTable
}

func (s *DatasetHotelSource) Provenance() models.Provenance { return models.ProvenanceDataset }

func (s *DatasetHotelSource) SearchHotels(ctx context.Context, q models.HotelQuery) ([]models.HotelOffer, error) {
	offers, err := s.Table.HotelOffers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("dataset hotel lookup: %w", err)
	}
	return offers, nil
}
