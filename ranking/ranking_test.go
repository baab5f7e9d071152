package ranking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"midway/models"
	"midway/places"
)

// stubProvider serves canned candidates and details, optionally failing
// specific place ids.
type stubProvider struct {
	candidates []places.Candidate
	failing    map[string]bool
	searchErr  error

	mu       sync.Mutex
	inflight int32
	maxSeen  int32
	delay    time.Duration
}

func (s *stubProvider) NearbySearch(ctx context.Context, center models.Coordinates, category string) ([]places.Candidate, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.candidates, nil
}

func (s *stubProvider) Details(ctx context.Context, placeID string) (*places.Details, error) {
	cur := atomic.AddInt32(&s.inflight, 1)
	defer atomic.AddInt32(&s.inflight, -1)

	s.mu.Lock()
	if cur > s.maxSeen {
		s.maxSeen = cur
	}
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if s.failing[placeID] {
		return nil, fmt.Errorf("details unavailable for %s", placeID)
	}
	return &places.Details{PlaceID: placeID, Name: "venue " + placeID}, nil
}

func candidates(dists ...float64) []places.Candidate {
	out := make([]places.Candidate, len(dists))
	for i, d := range dists {
		out[i] = places.Candidate{PlaceID: fmt.Sprintf("p%d", i), ApproxDistance: d}
	}
	return out
}

func TestRankOrdersByDistanceStable(t *testing.T) {
	provider := &stubProvider{candidates: candidates(3.2, 1.1, 1.1, 5.0)}

	ranked, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 4 {
		t.Fatalf("expected 4 venues, got %d", len(ranked))
	}

	wantDist := []float64{1.1, 1.1, 3.2, 5.0}
	for i, want := range wantDist {
		if ranked[i].ApproxDistance != want {
			t.Fatalf("position %d: want distance %v, got %v", i, want, ranked[i].ApproxDistance)
		}
	}
	// the two tied entries keep their provider order: p1 before p2
	if ranked[0].PlaceID != "p1" || ranked[1].PlaceID != "p2" {
		t.Fatalf("tie not stable: got %s then %s", ranked[0].PlaceID, ranked[1].PlaceID)
	}
}

func TestRankDropsFailedCandidates(t *testing.T) {
	provider := &stubProvider{
		candidates: candidates(2.0, 1.0, 3.0),
		failing:    map[string]bool{"p1": true},
	}

	ranked, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider)
	if err != nil {
		t.Fatalf("one failed candidate must not abort ranking: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected failed candidate dropped, got %d results", len(ranked))
	}
	for _, v := range ranked {
		if v.PlaceID == "p1" {
			t.Fatal("failed candidate leaked into results")
		}
	}
}

func TestRankAllDetailsFail(t *testing.T) {
	provider := &stubProvider{
		candidates: candidates(1.0, 2.0),
		failing:    map[string]bool{"p0": true, "p1": true},
	}

	_, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider)
	if !errors.Is(err, ErrProviderDown) {
		t.Fatalf("expected ErrProviderDown when every detail fetch fails, got %v", err)
	}
}

func TestRankSearchFailure(t *testing.T) {
	provider := &stubProvider{searchErr: fmt.Errorf("connection refused")}

	_, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider)
	if !errors.Is(err, ErrProviderDown) {
		t.Fatalf("expected ErrProviderDown, got %v", err)
	}
}

func TestRankNoCandidates(t *testing.T) {
	provider := &stubProvider{}

	ranked, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected empty result, got %d", len(ranked))
	}
}

func TestRankBoundedFanout(t *testing.T) {
	provider := &stubProvider{
		candidates: candidates(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12),
		delay:      20 * time.Millisecond,
	}

	if _, err := Rank(context.Background(), models.Coordinates{}, "cafe", provider); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	provider.mu.Lock()
	maxSeen := provider.maxSeen
	provider.mu.Unlock()
	if maxSeen > detailFanout {
		t.Fatalf("detail calls exceeded fan-out limit: saw %d in flight, limit %d", maxSeen, detailFanout)
	}
}

func TestRankCancellation(t *testing.T) {
	provider := &stubProvider{
		candidates: candidates(1, 2, 3, 4, 5, 6, 7, 8),
		delay:      time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := Rank(ctx, models.Coordinates{}, "cafe", provider)
	if err == nil {
		t.Fatal("expected error after cancellation")
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("cancellation did not propagate to in-flight detail calls")
	}
}
