package places

import (
	"context"

	"midway/models"
)

// Candidate is the lightweight nearby-search result: just an external id
// and how far the provider thinks it is from the search point.
type Candidate struct {
	PlaceID        string  `json:"placeid"`
	ApproxDistance float64 `json:"approx_distance"`
}

// Details carries a place's full attributes. Optional fields are pointers
// so "the provider did not report this" stays distinguishable from zero.
type Details struct {
	PlaceID     string             `json:"placeid"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Coords      models.Coordinates `json:"coords"`
	Rating      float64            `json:"rating"`
	RatingCount int                `json:"rating_count"`
	Types       []string           `json:"types"`
	Phone       *string            `json:"phone,omitempty"`
	Website     *string            `json:"website,omitempty"`
	PriceLevel  *int               `json:"price_level,omitempty"`
	Hours       []string           `json:"hours,omitempty"`
}

// Provider is the external place-search collaborator.
type Provider interface {
	NearbySearch(ctx context.Context, center models.Coordinates, category string) ([]Candidate, error)
	Details(ctx context.Context, placeID string) (*Details, error)
}
