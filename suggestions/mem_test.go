package suggestions

import (
	"context"
	"sort"
	"sync"

	"midway/models"
)

// memStore is an in-memory Store with the same atomicity guarantees the
// Mongo implementation gets from its unique index and revision filter.
type memStore struct {
	mu     sync.Mutex
	venues map[string]*models.SuggestedVenue // eventID + "/" + venueID
	byPlc  map[string]string                 // eventID + "/" + placeID -> venueID
}

func newMemStore() *memStore {
	return &memStore{
		venues: make(map[string]*models.SuggestedVenue),
		byPlc:  make(map[string]string),
	}
}

func copyVenue(v *models.SuggestedVenue) *models.SuggestedVenue {
	c := *v
	c.Votes = make(map[string]models.VoteDirection, len(v.Votes))
	for k, d := range v.Votes {
		c.Votes[k] = d
	}
	return &c
}

func (m *memStore) Insert(ctx context.Context, venue *models.SuggestedVenue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	placeKey := venue.EventID + "/" + venue.PlaceID
	if _, exists := m.byPlc[placeKey]; exists {
		return ErrDuplicateSuggestion
	}
	m.byPlc[placeKey] = venue.VenueID
	m.venues[venue.EventID+"/"+venue.VenueID] = copyVenue(venue)
	return nil
}

func (m *memStore) ListByEvent(ctx context.Context, eventID string) ([]models.SuggestedVenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.SuggestedVenue
	for _, v := range m.venues {
		if v.EventID == eventID {
			out = append(out, *copyVenue(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].VenueID < out[j].VenueID
	})
	return out, nil
}

func (m *memStore) Get(ctx context.Context, eventID, venueID string) (*models.SuggestedVenue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.venues[eventID+"/"+venueID]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return copyVenue(v), nil
}

func (m *memStore) CompareAndSetVotes(ctx context.Context, eventID, venueID string, rev int64, votes map[string]models.VoteDirection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.venues[eventID+"/"+venueID]
	if !ok || v.Rev != rev {
		return ErrConflict
	}
	v.Votes = make(map[string]models.VoteDirection, len(votes))
	for k, d := range votes {
		v.Votes[k] = d
	}
	v.Rev++
	return nil
}

type memEvents struct {
	events map[string]*models.Event
}

func newMemEvents(events ...*models.Event) *memEvents {
	m := &memEvents{events: make(map[string]*models.Event)}
	for _, e := range events {
		m.events[e.EventID] = e
	}
	return m
}

func (m *memEvents) Get(ctx context.Context, eventID string) (*models.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func testEvent() *models.Event {
	return &models.Event{
		EventID: "ev1",
		Title:   "team lunch",
		Participants: []models.Participant{
			{UserID: "alice", Status: models.StatusGoing},
			{UserID: "bob", Status: models.StatusGoing},
			{UserID: "carol", Status: models.StatusInvited},
			{UserID: "dave", Status: models.StatusNotGoing},
		},
	}
}
