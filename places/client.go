package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"midway/models"
	"midway/rdx"

	"github.com/redis/go-redis/v9"
)

const detailsCacheTTL = 15 * time.Minute

// Client talks to the configured place-search HTTP API. Place details are
// cached in Redis read-through; nearby searches are not cached because the
// center moves with every flexibility change.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient() *Client {
	base := os.Getenv("PLACES_API_URL")
	if base == "" {
		base = "http://localhost:9200"
	}
	return &Client{
		baseURL: base,
		apiKey:  os.Getenv("PLACES_API_KEY"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) NearbySearch(ctx context.Context, center models.Coordinates, category string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	q.Set("category", category)

	var out struct {
		Results []Candidate `json:"results"`
	}
	if err := c.getJSON(ctx, "/nearby?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	cacheKey := "place:details:" + placeID

	if cached, err := rdx.Conn.Get(ctx, cacheKey).Result(); err == nil {
		var d Details
		if err := json.Unmarshal([]byte(cached), &d); err == nil {
			return &d, nil
		}
	} else if err != redis.Nil {
		log.Printf("places: details cache read failed: %v", err)
	}

	var d Details
	if err := c.getJSON(ctx, "/details/"+url.PathEscape(placeID), &d); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&d); err == nil {
		if err := rdx.Conn.Set(ctx, cacheKey, data, detailsCacheTTL).Err(); err != nil {
			log.Printf("places: details cache write failed: %v", err)
		}
	}

	return &d, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("place provider returned %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
