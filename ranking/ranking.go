// Package ranking turns a resolved meeting point into an ordered list of
// venue candidates, enriched through the place-search provider.
package ranking

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"midway/models"
	"midway/places"

	"golang.org/x/sync/errgroup"
)

var ErrProviderDown = errors.New("place provider unavailable")

const (
	detailFanout  = 4
	detailTimeout = 3 * time.Second
)

// RankedVenue pairs a candidate's full details with the provider-reported
// distance the ordering is based on.
type RankedVenue struct {
	places.Details
	ApproxDistance float64 `json:"approx_distance"`
}

// Rank fetches nearby candidates and enriches each through provider.Details
// with at most detailFanout calls in flight. A candidate whose detail fetch
// fails is dropped and logged; the whole operation only fails when the
// nearby search fails or no candidate could be enriched. Cancelling ctx
// cancels in-flight detail calls.
func Rank(ctx context.Context, centroid models.Coordinates, category string, provider places.Provider) ([]RankedVenue, error) {
	candidates, err := provider.NearbySearch(ctx, centroid, category)
	if err != nil {
		log.Printf("ranking: nearby search failed: %v", err)
		return nil, ErrProviderDown
	}
	if len(candidates) == 0 {
		return []RankedVenue{}, nil
	}

	// one slot per candidate keeps the provider's original order, which the
	// stable sort below uses to break distance ties
	slots := make([]*RankedVenue, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFanout)
	for i, cand := range candidates {
		g.Go(func() error {
			dctx, cancel := context.WithTimeout(gctx, detailTimeout)
			defer cancel()

			det, err := provider.Details(dctx, cand.PlaceID)
			if err != nil {
				log.Printf("ranking: dropping candidate %s: %v", cand.PlaceID, err)
				return nil
			}
			slots[i] = &RankedVenue{Details: *det, ApproxDistance: cand.ApproxDistance}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		// caller cancelled mid-flight; whatever landed in slots is stale
		return nil, err
	}

	ranked := make([]RankedVenue, 0, len(candidates))
	for _, s := range slots {
		if s != nil {
			ranked = append(ranked, *s)
		}
	}
	if len(ranked) == 0 {
		return nil, ErrProviderDown
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ApproxDistance < ranked[j].ApproxDistance
	})
	return ranked, nil
}
