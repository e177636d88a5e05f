package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// plain converts a decoded document into JSON-friendly Go values: nested
// documents become map[string]any, arrays []any, ObjectIDs hex strings and
// BSON datetimes time.Time.
func plain(v any) any {
	switch x := v.(type) {
	case bson.M:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = plain(vv)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = plain(vv)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = plain(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = plain(vv)
		}
		return out
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC()
	default:
		return v
	}
}

func plainDoc(doc bson.M) map[string]any {
	out, _ := plain(doc).(map[string]any)
	if id, ok := out["_id"]; ok {
		out["id"] = id
		delete(out, "_id")
	}
	return out
}
