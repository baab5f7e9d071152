// Package suggestions keeps the per-event venue suggestion ledger and its
// vote tallies. Suggestions are append-only with a uniqueness guarantee per
// external place id; votes are toggled per participant with optimistic
// concurrency so simultaneous voters never overwrite each other.
package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"midway/models"
	"midway/places"
	"midway/utils"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrVenueNotFound       = errors.New("venue not found in event")
	ErrForbidden           = errors.New("participant is not attending this event")
	ErrDuplicateSuggestion = errors.New("place already suggested for this event")
	ErrConflict            = errors.New("suggestion was modified concurrently, retry")
)

// Notifier fans a notification out to other attendees. Fire-and-forget:
// the ledger never fails an operation because a notification did.
type Notifier interface {
	Emit(ctx context.Context, n models.Notification)
}

// Broadcaster pushes live updates to clients watching an event.
type Broadcaster interface {
	Broadcast(room string, data []byte)
}

type Ledger struct {
	store    Store
	events   EventSource
	notifier Notifier
	hub      Broadcaster
}

func NewLedger(store Store, events EventSource, notifier Notifier, hub Broadcaster) *Ledger {
	return &Ledger{store: store, events: events, notifier: notifier, hub: hub}
}

// Add appends a suggested venue to the event's ledger. The caller must be a
// Going attendee and the place must not already be suggested; the duplicate
// check and insert are atomic with respect to concurrent Add calls.
func (l *Ledger) Add(ctx context.Context, eventID, userID string, det places.Details) (*models.SuggestedVenue, error) {
	event, err := l.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Attendee(userID) {
		return nil, ErrForbidden
	}
	if det.PlaceID == "" {
		return nil, fmt.Errorf("candidate is missing a place id")
	}

	venue := &models.SuggestedVenue{
		VenueID:     utils.GenerateID(14),
		EventID:     eventID,
		PlaceID:     det.PlaceID,
		Name:        det.Name,
		Address:     det.Address,
		Coords:      det.Coords,
		Rating:      det.Rating,
		RatingCount: det.RatingCount,
		Types:       det.Types,
		Phone:       det.Phone,
		Website:     det.Website,
		PriceLevel:  det.PriceLevel,
		Hours:       det.Hours,
		SuggestedBy: userID,
		Votes:       map[string]models.VoteDirection{},
		Rev:         0,
		CreatedAt:   time.Now(),
	}

	if err := l.store.Insert(ctx, venue); err != nil {
		return nil, err
	}

	l.notifyAttendees(event, userID, "suggestion_added",
		fmt.Sprintf("%s suggested %s", userID, venue.Name))
	l.broadcast(eventID, utils.M{"action": "suggestion_added", "venue": venue})

	return venue, nil
}

// List returns the event's suggestions in submission order with tallies.
func (l *Ledger) List(ctx context.Context, eventID string) ([]models.SuggestedVenue, error) {
	if _, err := l.events.Get(ctx, eventID); err != nil {
		return nil, err
	}
	venues, err := l.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if venues == nil {
		venues = []models.SuggestedVenue{}
	}
	return venues, nil
}

// notifyAttendees emits to every attendee except the actor. Failures inside
// the notifier are its own problem; nothing propagates back here.
func (l *Ledger) notifyAttendees(event *models.Event, actorID, kind, message string) {
	if l.notifier == nil {
		return
	}
	var recipients []string
	for _, p := range event.Going() {
		if p.UserID != actorID {
			recipients = append(recipients, p.UserID)
		}
	}
	if len(recipients) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		l.notifier.Emit(ctx, models.Notification{
			EventID:    event.EventID,
			Recipients: recipients,
			Kind:       kind,
			Message:    message,
		})
	}()
}

func (l *Ledger) broadcast(eventID string, payload utils.M) {
	if l.hub == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("suggestions: broadcast marshal failed: %v", err)
		return
	}
	l.hub.Broadcast(eventID, data)
}
