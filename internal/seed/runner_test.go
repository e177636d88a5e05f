package seed

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCollection struct {
	docs    []map[string]any
	failOn  string
	deletes int
	nextID  int
}

func (c *memCollection) withID(doc map[string]any, id any) map[string]any {
	out := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	if id == nil {
		c.nextID++
		id = c.nextID
	}
	out["_id"] = id
	return out
}

func (c *memCollection) DeleteAll(context.Context) error {
	if c.failOn == "delete" {
		return errors.New("delete refused")
	}
	c.deletes++
	c.docs = nil
	return nil
}

func (c *memCollection) InsertAll(_ context.Context, docs []map[string]any) error {
	if c.failOn == "insert" {
		return errors.New("insert refused")
	}
	for _, d := range docs {
		c.docs = append(c.docs, c.withID(d, nil))
	}
	return nil
}

// Upsert replaces the first match only, as ReplaceOne-style writes do.
func (c *memCollection) Upsert(_ context.Context, key, doc map[string]any) (any, error) {
	if c.failOn == "upsert" {
		return nil, errors.New("upsert refused")
	}
	for i, d := range c.docs {
		if matches(d, key) {
			c.docs[i] = c.withID(doc, d["_id"])
			return c.docs[i]["_id"], nil
		}
	}
	stored := c.withID(doc, nil)
	c.docs = append(c.docs, stored)
	return stored["_id"], nil
}

func (c *memCollection) DeleteExcept(_ context.Context, ids []any) (int64, error) {
	var kept []map[string]any
	var removed int64
	for _, d := range c.docs {
		keep := false
		for _, id := range ids {
			if d["_id"] != nil && d["_id"] == id {
				keep = true
				break
			}
		}
		if keep {
			kept = append(kept, d)
		} else {
			removed++
		}
	}
	c.docs = kept
	return removed, nil
}

func matches(doc, key map[string]any) bool {
	for k, v := range key {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

type memStore map[string]*memCollection

func (s memStore) Collection(name string) Collection {
	c, ok := s[name]
	if !ok {
		c = &memCollection{}
		s[name] = c
	}
	return c
}

var wantCounts = map[string]int{
	"learning_analytics": 2,
	"student_messages":   3,
	"content_library":    3,
	"discussion_forums":  2,
	"video_sessions":     2,
	"ai_insights":        2,
	"activity_timeline":  3,
	"system_health":      4,
}

func TestFixtures_CountsAndUniqueKeys(t *testing.T) {
	sets := Fixtures(time.Now())
	require.Len(t, sets, len(wantCounts))
	for _, s := range sets {
		assert.Len(t, s.Records, wantCounts[s.Collection], s.Collection)
		seen := map[string]bool{}
		for _, rec := range s.Records {
			k := ""
			for _, f := range s.Key {
				v, ok := rec[f]
				require.True(t, ok, "%s record missing key field %s", s.Collection, f)
				k += "|" + v.(string)
			}
			assert.False(t, seen[k], "%s duplicate natural key %s", s.Collection, k)
			seen[k] = true
		}
	}
}

func TestRunner_RunTwiceKeepsExactCounts(t *testing.T) {
	for _, strategy := range []Strategy{StrategyUpsert, StrategyReplace} {
		t.Run(string(strategy), func(t *testing.T) {
			store := memStore{}
			runner := NewRunner(store, strategy, nil)

			for i := 0; i < 2; i++ {
				_, err := runner.Run(context.Background(), Fixtures(time.Now()))
				require.NoError(t, err)
			}
			for name, n := range wantCounts {
				assert.Len(t, store[name].docs, n, name)
			}
		})
	}
}

func TestRunner_UpsertPrunesForeignDocuments(t *testing.T) {
	store := memStore{
		"system_health": {docs: []map[string]any{
			{"component_name": "legacy_queue", "status": "down"},
			{"component_name": "database", "status": "down"},
		}},
	}
	reports, err := NewRunner(store, StrategyUpsert, nil).Run(context.Background(), Fixtures(time.Now()))
	require.NoError(t, err)

	assert.Len(t, store["system_health"].docs, 4)
	for _, d := range store["system_health"].docs {
		assert.Equal(t, "healthy", d["status"])
		assert.NotEqual(t, "legacy_queue", d["component_name"])
	}
	last := reports[len(reports)-1]
	assert.Equal(t, "system_health", last.Collection)
	assert.EqualValues(t, 1, last.Removed)
}

func TestRunner_UpsertDropsDuplicateKeys(t *testing.T) {
	store := memStore{
		"system_health": {docs: []map[string]any{
			{"_id": "a", "component_name": "database", "status": "down"},
			{"_id": "b", "component_name": "database", "status": "down"},
			{"_id": "c", "component_name": "storage", "status": "healthy"},
			{"_id": "d", "component_name": "storage", "status": "degraded"},
		}},
	}
	reports, err := NewRunner(store, StrategyUpsert, nil).Run(context.Background(), Fixtures(time.Now()))
	require.NoError(t, err)

	docs := store["system_health"].docs
	assert.Len(t, docs, wantCounts["system_health"])
	seen := map[any]int{}
	for _, d := range docs {
		assert.Equal(t, "healthy", d["status"])
		seen[d["component_name"]]++
	}
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
	}
	assert.EqualValues(t, 2, reports[len(reports)-1].Removed)
}

func TestRunner_AbortsOnFirstFailureWithoutRollback(t *testing.T) {
	store := memStore{
		"content_library": {failOn: "insert"},
	}
	reports, err := NewRunner(store, StrategyReplace, nil).Run(context.Background(), Fixtures(time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content_library")

	require.Len(t, reports, 2)
	assert.Len(t, store["learning_analytics"].docs, 2)
	assert.Len(t, store["student_messages"].docs, 3)
	_, touched := store["discussion_forums"]
	assert.False(t, touched)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyUpsert, s)

	s, err = ParseStrategy(" Replace ")
	require.NoError(t, err)
	assert.Equal(t, StrategyReplace, s)

	_, err = ParseStrategy("merge")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
