package repository

import (
	"context"
	"errors"
	"time"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// ProfileRepository stores one profile per educator.
type ProfileRepository interface {
	Get(ctx context.Context, educatorID string) (entity.Profile, error)
	// Update sets fields on the educator's profile, creating it when missing,
	// and returns the stored record.
	Update(ctx context.Context, educatorID string, fields entity.Profile) (entity.Profile, error)
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	Filter     map[string]any
	SortDesc   string // field to sort newest first; empty keeps natural order
	Limit      int64
	Since      *SinceFilter
}

// SinceFilter restricts a query to documents whose Field is at or after At.
type SinceFilter struct {
	Field string
	At    time.Time
}

// RecordRepository reads and appends loosely-typed records in the educator collections.
type RecordRepository interface {
	Find(ctx context.Context, q Query) ([]map[string]any, error)
	Insert(ctx context.Context, collection string, doc any) (string, error)
}
