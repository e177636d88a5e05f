package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
	"github.com/agenticlearn/educator-portal/internal/domain/repository"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(repository.CollectionProfiles)}
}

func (r *ProfileRepository) Get(ctx context.Context, educatorID string) (entity.Profile, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{entity.FieldEducatorID: educatorID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toProfile(doc), nil
}

func (r *ProfileRepository) Update(ctx context.Context, educatorID string, fields entity.Profile) (entity.Profile, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		if k == "_id" || k == "id" || k == entity.FieldEducatorID {
			continue
		}
		set[k] = v
	}
	// a path may appear in only one of $set and $setOnInsert
	onInsert := bson.M{entity.FieldEducatorID: educatorID}
	if _, ok := set[entity.FieldJoinedDate]; !ok {
		onInsert[entity.FieldJoinedDate] = time.Now().UTC()
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": onInsert,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc bson.M
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{entity.FieldEducatorID: educatorID}, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return toProfile(doc), nil
}

func toProfile(doc bson.M) entity.Profile {
	p := entity.Profile(plainDoc(doc))
	delete(p, "id")
	return p
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
