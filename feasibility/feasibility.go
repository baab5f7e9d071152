// Package feasibility computes the region where every attending
// participant's travel constraint can be satisfied at once.
//
// Each participant's reachable area is approximated by the axis-aligned
// square [x-f, x+f] x [y-f, y+f] rather than a true disk of radius f. Box
// overlap does not guarantee the disks themselves overlap; the per-participant
// reach diagnostics on the result exist to surface exactly that looseness.
package feasibility

import (
	"errors"
	"math"

	"midway/models"
)

var (
	ErrNoParticipants = errors.New("no attending participants to resolve")
	ErrNoOverlap      = errors.New("participants' travel ranges do not intersect")
)

// Constraint is one participant's location and travel radius.
type Constraint struct {
	UserID      string
	X           float64
	Y           float64
	Flexibility float64
}

// Resolve intersects all participants' travel boxes and returns the shared
// region with its midpoint as the proposed meeting point. Pure and O(n).
func Resolve(constraints []Constraint) (*models.FeasibleRegion, error) {
	if len(constraints) == 0 {
		return nil, ErrNoParticipants
	}

	minX := math.Inf(-1)
	maxX := math.Inf(1)
	minY := math.Inf(-1)
	maxY := math.Inf(1)

	for _, c := range constraints {
		minX = math.Max(minX, c.X-c.Flexibility)
		maxX = math.Min(maxX, c.X+c.Flexibility)
		minY = math.Max(minY, c.Y-c.Flexibility)
		maxY = math.Min(maxY, c.Y+c.Flexibility)
	}

	if minX > maxX || minY > maxY {
		return nil, ErrNoOverlap
	}

	region := &models.FeasibleRegion{
		MinX: minX,
		MaxX: maxX,
		MinY: minY,
		MaxY: maxY,
		Centroid: models.Coordinates{
			Lng: (minX + maxX) / 2,
			Lat: (minY + maxY) / 2,
		},
	}

	// Advisory only: flag participants whose own radius may not actually
	// cover the box-derived centroid. Never a failure.
	for _, c := range constraints {
		d := math.Hypot(c.X-region.Centroid.Lng, c.Y-region.Centroid.Lat)
		region.Reaches = append(region.Reaches, models.ParticipantReach{
			UserID:      c.UserID,
			Distance:    d,
			Flexibility: c.Flexibility,
			WithinReach: d <= c.Flexibility,
		})
	}

	return region, nil
}
