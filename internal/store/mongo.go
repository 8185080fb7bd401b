package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roadhaul/fleet-sim/internal/models"
)

// snapshotDocID keys the single snapshot document; every save upserts the
// same document so the previous good snapshot stays authoritative until a
// write succeeds.
const snapshotDocID = "latest"

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

type snapshotDoc struct {
	ID       string          `bson:"_id"`
	Snapshot models.Snapshot `bson:"snapshot"`
}

// MongoStore persists snapshots as a single upserted document.
type MongoStore struct {
	Collection *mongo.Collection
}

// NewMongoStore wraps the given collection.
func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: coll}
}

// Save upserts the snapshot document.
func (s *MongoStore) Save(ctx context.Context, snap models.Snapshot) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.ReplaceOne(ctx,
		bson.M{"_id": snapshotDocID},
		snapshotDoc{ID: snapshotDocID, Snapshot: snap},
		options.Replace().SetUpsert(true),
	)
	return err
}

// Load fetches the snapshot document, or ErrNoSnapshot if none exists.
func (s *MongoStore) Load(ctx context.Context) (models.Snapshot, error) {
	if s.Collection == nil {
		return models.Snapshot{}, fmt.Errorf("mongo collection is nil")
	}
	var doc snapshotDoc
	err := s.Collection.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.Snapshot{}, err
	}
	return doc.Snapshot, nil
}
