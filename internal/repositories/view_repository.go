package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ViewRepository keeps a version counter per cached view. Bumping a key tells
// the presentation layer that anything it rendered for that key is stale.
type ViewRepository interface {
	Invalidate(ctx context.Context, keys ...string) error
	Version(ctx context.Context, key string) (int64, error)
}

type viewVersion struct {
	Key       string    `bson:"_id"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoViewRepository implements ViewRepository for MongoDB
type MongoViewRepository struct {
	collection *mongo.Collection
}

// NewMongoViewRepository creates a new MongoViewRepository
func NewMongoViewRepository(db *mongo.Database) *MongoViewRepository {
	return &MongoViewRepository{collection: db.Collection("view_versions")}
}

// Invalidate increments the version of every key, creating missing ones.
func (r *MongoViewRepository) Invalidate(ctx context.Context, keys ...string) error {
	now := time.Now()
	for _, key := range keys {
		update := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"updated_at": now},
		}
		_, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("invalidate view %s: %w", key, err)
		}
	}
	return nil
}

// Version returns the current version of key, zero if it was never bumped.
func (r *MongoViewRepository) Version(ctx context.Context, key string) (int64, error) {
	var doc viewVersion
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("read view version %s: %w", key, err)
	}
	return doc.Version, nil
}

// NopViewRepository is used when no MongoDB is configured.
type NopViewRepository struct{}

func (NopViewRepository) Invalidate(context.Context, ...string) error { return nil }

func (NopViewRepository) Version(context.Context, string) (int64, error) { return 0, nil }
