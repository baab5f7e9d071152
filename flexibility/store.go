package flexibility

import (
	"context"
	"errors"
	"time"

	"midway/db"
	"midway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns the Store backed by the flexibility collection.
func NewMongoStore() Store {
	return &mongoStore{coll: db.FlexibilityCollection}
}

func (m *mongoStore) Get(ctx context.Context, eventID, userID string) (float64, bool, error) {
	var doc models.FlexibilityDoc
	err := m.coll.FindOne(ctx, bson.M{"eventid": eventID, "userid": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.Value, true, nil
}

func (m *mongoStore) Set(ctx context.Context, eventID, userID string, value float64) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"eventid": eventID, "userid": userID},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *mongoStore) SetIfAbsent(ctx context.Context, eventID, userID string, value float64) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"eventid": eventID, "userid": userID},
		bson.M{"$setOnInsert": bson.M{"value": value, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	// a concurrent upsert of the same pair hits the unique index; the value
	// is already there, which is exactly what SetIfAbsent wants
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
