package feasibility

import (
	"errors"
	"math"
	"testing"
)

func TestResolveOverlap(t *testing.T) {
	region, err := Resolve([]Constraint{
		{UserID: "a", X: 2, Y: 0, Flexibility: 4},
		{UserID: "b", X: -2, Y: 0, Flexibility: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if region.MinX != -2 || region.MaxX != 3 || region.MinY != -4 || region.MaxY != 4 {
		t.Fatalf("wrong box: %+v", region)
	}
	if region.Centroid.Lng != 0.5 || region.Centroid.Lat != 0 {
		t.Fatalf("wrong centroid: %+v", region.Centroid)
	}
}

func TestResolveNoOverlap(t *testing.T) {
	_, err := Resolve([]Constraint{
		{UserID: "a", X: 0, Y: 0, Flexibility: 1},
		{UserID: "b", X: 5, Y: 0, Flexibility: 1},
	})
	if !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
}

func TestResolveEmptyInput(t *testing.T) {
	_, err := Resolve(nil)
	if !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}
}

func TestResolveSingleParticipant(t *testing.T) {
	region, err := Resolve([]Constraint{{UserID: "a", X: 3, Y: 7, Flexibility: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if region.Centroid.Lng != 3 || region.Centroid.Lat != 7 {
		t.Fatalf("single participant should meet at their own location, got %+v", region.Centroid)
	}
}

func TestResolveZeroFlexibilitySamePoint(t *testing.T) {
	region, err := Resolve([]Constraint{
		{UserID: "a", X: 1, Y: 1, Flexibility: 0},
		{UserID: "b", X: 1, Y: 1, Flexibility: 0},
	})
	if err != nil {
		t.Fatalf("identical zero-radius boxes should still intersect: %v", err)
	}
	if region.MinX != region.MaxX || region.MinY != region.MaxY {
		t.Fatalf("expected degenerate box, got %+v", region)
	}
}

func TestResolveReachDiagnostics(t *testing.T) {
	// the boxes intersect at [3,4]x[3,4] with centroid (3.5,3.5), but b's
	// disk of radius 3 stops short of it (distance ~3.54); the diagnostic
	// flags that without failing the resolution
	region, err := Resolve([]Constraint{
		{UserID: "a", X: 0, Y: 0, Flexibility: 4},
		{UserID: "b", X: 6, Y: 6, Flexibility: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(region.Reaches) != 2 {
		t.Fatalf("expected diagnostics for both participants, got %d", len(region.Reaches))
	}

	for _, reach := range region.Reaches {
		wantWithin := reach.Distance <= reach.Flexibility
		if reach.WithinReach != wantWithin {
			t.Fatalf("inconsistent reach flag for %s: %+v", reach.UserID, reach)
		}
		if reach.UserID == "b" && reach.WithinReach {
			t.Fatalf("expected b to be flagged out of reach: distance %.2f vs flexibility %.2f",
				reach.Distance, reach.Flexibility)
		}
	}
}

func TestResolveDistanceIsEuclidean(t *testing.T) {
	region, err := Resolve([]Constraint{
		{UserID: "a", X: 0, Y: 0, Flexibility: 10},
		{UserID: "b", X: 6, Y: 8, Flexibility: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Hypot(region.Centroid.Lng, region.Centroid.Lat)
	if region.Reaches[0].Distance != want {
		t.Fatalf("expected distance %.4f, got %.4f", want, region.Reaches[0].Distance)
	}
}
