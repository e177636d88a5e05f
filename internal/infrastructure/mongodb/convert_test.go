package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlainDoc(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	got := plainDoc(bson.M{
		"_id":        oid,
		"created_at": primitive.NewDateTimeFromTime(at),
		"tags":       bson.A{"algebra", bson.M{"level": int32(2)}},
		"metrics":    bson.D{{Key: "uptime", Value: 99.9}},
	})

	assert.Equal(t, map[string]any{
		"id":         oid.Hex(),
		"created_at": at,
		"tags":       []any{"algebra", map[string]any{"level": int32(2)}},
		"metrics":    map[string]any{"uptime": 99.9},
	}, got)
}
