package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"midway/models"
)

func testClient(url string) *Client {
	return &Client{baseURL: url, http: http.DefaultClient}
}

func TestNearbySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nearby" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("category"); got != "cafe" {
			t.Errorf("expected category=cafe, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []Candidate{
				{PlaceID: "p1", ApproxDistance: 1.2},
				{PlaceID: "p2", ApproxDistance: 3.4},
			},
		})
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).NearbySearch(context.Background(), models.Coordinates{Lng: 0.5, Lat: 0}, "cafe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].PlaceID != "p1" || got[1].ApproxDistance != 3.4 {
		t.Fatalf("wrong candidates: %+v", got)
	}
}

func TestNearbySearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).NearbySearch(context.Background(), models.Coordinates{}, "cafe")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestDetailsOptionalFields(t *testing.T) {
	phone := "+1 555 0100"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Details{
			PlaceID: "p1",
			Name:    "Blue Bottle",
			Phone:   &phone,
			// website, price level, hours deliberately absent
		})
	}))
	defer srv.Close()

	det, err := testClient(srv.URL).Details(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if det.Phone == nil || *det.Phone != phone {
		t.Fatalf("phone lost in transit: %+v", det.Phone)
	}
	if det.Website != nil || det.PriceLevel != nil || det.Hours != nil {
		t.Fatalf("absent fields must stay absent, got %+v", det)
	}
	if det.Rating != 0 || det.RatingCount != 0 {
		t.Fatalf("missing rating should default to zero, got %+v", det)
	}
}
