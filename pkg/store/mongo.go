package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoCollection is the subset of *mongo.Collection the store uses.
type MongoCollection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// MongoStore keeps one document per key: {_id: key, value: bytes, updated_at}.
type MongoStore struct {
	client *mongo.Client
	coll   MongoCollection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore wraps an existing collection. Close is a no-op for stores
// created this way; the caller owns the client.
func NewMongoStore(coll MongoCollection) *MongoStore {
	return &MongoStore{coll: coll}
}

// OpenMongoStore connects and returns a store bound to the configured collection.
func OpenMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := ConnectMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&entry)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, false, nil
	case err != nil:
		return nil, false, errors.Join(ErrReadFailed, err)
	}
	return entry.Value, true, nil
}

func (s *MongoStore) Write(ctx context.Context, key string, value []byte) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: value},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	_, err := s.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ConnectMongo connects and pings, retrying RetryAttempts times.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	for range max(cfg.RetryAttempts, 1) {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
			_ = client.Disconnect(ctx)
		}
		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrMongoNotReady
}
