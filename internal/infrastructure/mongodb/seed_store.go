package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agenticlearn/educator-portal/internal/seed"
)

// SeedStore exposes collections of db to the seed runner.
type SeedStore struct {
	db *mongo.Database
}

func NewSeedStore(db *mongo.Database) *SeedStore {
	return &SeedStore{db: db}
}

func (s *SeedStore) Collection(name string) seed.Collection {
	return &seedCollection{coll: s.db.Collection(name)}
}

type seedCollection struct {
	coll *mongo.Collection
}

func (c *seedCollection) DeleteAll(ctx context.Context) error {
	_, err := c.coll.DeleteMany(ctx, bson.M{})
	return err
}

func (c *seedCollection) InsertAll(ctx context.Context, docs []map[string]any) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]any, len(docs))
	for i, d := range docs {
		batch[i] = bson.M(d)
	}
	_, err := c.coll.InsertMany(ctx, batch)
	return err
}

func (c *seedCollection) Upsert(ctx context.Context, key, doc map[string]any) (any, error) {
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})
	var written struct {
		ID any `bson:"_id"`
	}
	if err := c.coll.FindOneAndReplace(ctx, bson.M(key), bson.M(doc), opts).Decode(&written); err != nil {
		return nil, err
	}
	return written.ID, nil
}

func (c *seedCollection) DeleteExcept(ctx context.Context, ids []any) (int64, error) {
	filter := bson.M{}
	if len(ids) > 0 {
		filter = bson.M{"_id": bson.M{"$nin": bson.A(ids)}}
	}
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ seed.Store = (*SeedStore)(nil)
