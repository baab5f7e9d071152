package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	EventsCollection      *mongo.Collection
	SuggestionsCollection *mongo.Collection
	FlexibilityCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	EventsCollection = Client.Database("midwaydb").Collection("events")
	SuggestionsCollection = Client.Database("midwaydb").Collection("suggestions")
	FlexibilityCollection = Client.Database("midwaydb").Collection("flexibility")
}

// EnsureIndexes creates the collection indexes once at process start.
// The unique suggestion index is what makes concurrent duplicate submissions
// lose cleanly instead of both inserting.
func EnsureIndexes(ctx context.Context) error {
	_, err := SuggestionsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "eventid", Value: 1}, {Key: "placeid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "eventid", Value: 1}, {Key: "venueid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = FlexibilityCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventid", Value: 1}, {Key: "userid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = EventsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
