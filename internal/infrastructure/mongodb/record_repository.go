package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agenticlearn/educator-portal/internal/domain/repository"
)

type RecordRepository struct {
	db *mongo.Database
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Find(ctx context.Context, q repository.Query) ([]map[string]any, error) {
	filter := bson.M{}
	for k, v := range q.Filter {
		filter[k] = v
	}
	if q.Since != nil {
		filter[q.Since.Field] = bson.M{"$gte": q.Since.At}
	}
	opts := options.Find()
	if q.SortDesc != "" {
		opts.SetSort(bson.D{{Key: q.SortDesc, Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, plainDoc(d))
	}
	return out, nil
}

func (r *RecordRepository) Insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

var _ repository.RecordRepository = (*RecordRepository)(nil)
