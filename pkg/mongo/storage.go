package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the part of *mongo.Collection used by Storage.
type Collection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

// Storage upserts one document per key:
//
//	{_id: key, content, content_type, created_at, updated_at}
type Storage struct {
	coll Collection
	now  func() time.Time
}

func NewStorage(coll Collection) *Storage {
	return &Storage{coll: coll, now: time.Now}
}

func (s *Storage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	now := s.now().UTC()

	filter := bson.D{{Key: "_id", Value: key}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "content", Value: string(content)},
			{Key: "content_type", Value: contentType},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "created_at", Value: now},
		}},
	}

	if _, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPutFailed, key, err)
	}
	return nil
}
