package suggestions

import (
	"context"
	"errors"

	"midway/db"
	"midway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the persistence boundary for the suggestion ledger. Insert must
// be atomic with respect to concurrent inserts of the same (event, place)
// pair, and CompareAndSetVotes must reject writes against a stale revision.
type Store interface {
	Insert(ctx context.Context, venue *models.SuggestedVenue) error
	ListByEvent(ctx context.Context, eventID string) ([]models.SuggestedVenue, error)
	Get(ctx context.Context, eventID, venueID string) (*models.SuggestedVenue, error)
	CompareAndSetVotes(ctx context.Context, eventID, venueID string, rev int64, votes map[string]models.VoteDirection) error
}

// EventSource resolves events for attendee checks.
type EventSource interface {
	Get(ctx context.Context, eventID string) (*models.Event, error)
}

type mongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore() Store {
	return &mongoStore{coll: db.SuggestionsCollection}
}

func (m *mongoStore) Insert(ctx context.Context, venue *models.SuggestedVenue) error {
	// the unique (eventid, placeid) index decides races between concurrent
	// submissions of the same place: exactly one insert lands
	_, err := m.coll.InsertOne(ctx, venue)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSuggestion
	}
	return err
}

func (m *mongoStore) ListByEvent(ctx context.Context, eventID string) ([]models.SuggestedVenue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "venueid", Value: 1}})
	cursor, err := m.coll.Find(ctx, bson.M{"eventid": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var venues []models.SuggestedVenue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (m *mongoStore) Get(ctx context.Context, eventID, venueID string) (*models.SuggestedVenue, error) {
	var venue models.SuggestedVenue
	err := m.coll.FindOne(ctx, bson.M{"eventid": eventID, "venueid": venueID}).Decode(&venue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (m *mongoStore) CompareAndSetVotes(ctx context.Context, eventID, venueID string, rev int64, votes map[string]models.VoteDirection) error {
	res, err := m.coll.UpdateOne(ctx,
		bson.M{"eventid": eventID, "venueid": venueID, "rev": rev},
		bson.M{"$set": bson.M{"votes": votes}, "$inc": bson.M{"rev": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// either the venue vanished or somebody moved the revision first;
		// the caller re-reads and retries, so conflict covers both
		return ErrConflict
	}
	return nil
}

type mongoEvents struct {
	coll *mongo.Collection
}

func NewMongoEvents() EventSource {
	return &mongoEvents{coll: db.EventsCollection}
}

func (m *mongoEvents) Get(ctx context.Context, eventID string) (*models.Event, error) {
	var event models.Event
	err := m.coll.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
