// Package seed loads the fixed demo record sets into the educator collections.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Strategy selects how a collection is brought to its literal contents.
type Strategy string

const (
	// StrategyReplace deletes every document and inserts the literal set.
	StrategyReplace Strategy = "replace"
	// StrategyUpsert writes each record by natural key and prunes the rest.
	StrategyUpsert Strategy = "upsert"
)

var ErrUnknownStrategy = errors.New("unknown seed strategy")

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyUpsert:
		return StrategyUpsert, nil
	case StrategyReplace:
		return StrategyReplace, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Collection is the write surface the runner needs from one collection.
type Collection interface {
	DeleteAll(ctx context.Context) error
	InsertAll(ctx context.Context, docs []map[string]any) error
	// Upsert replaces one document matching key with doc, inserting when
	// absent, and returns the _id of the written document.
	Upsert(ctx context.Context, key, doc map[string]any) (any, error)
	// DeleteExcept removes every document whose _id is not in ids.
	DeleteExcept(ctx context.Context, ids []any) (int64, error)
}

type Store interface {
	Collection(name string) Collection
}

// Report summarizes one collection's run.
type Report struct {
	Collection string
	Written    int
	Removed    int64
}

type Runner struct {
	Store    Store
	Strategy Strategy
	Logger   *logrus.Logger
}

func NewRunner(store Store, strategy Strategy, logger *logrus.Logger) *Runner {
	return &Runner{Store: store, Strategy: strategy, Logger: logger}
}

// Run applies sets in order and stops at the first failing collection.
// Collections already written are left as they are.
func (r *Runner) Run(ctx context.Context, sets []Set) ([]Report, error) {
	reports := make([]Report, 0, len(sets))
	for _, set := range sets {
		rep, err := r.apply(ctx, set)
		if err != nil {
			if r.Logger != nil {
				r.Logger.WithError(err).WithFields(logrus.Fields{
					"collection": set.Collection,
					"strategy":   r.Strategy,
				}).Error("seed aborted")
			}
			return reports, fmt.Errorf("seed %s: %w", set.Collection, err)
		}
		reports = append(reports, rep)
		if r.Logger != nil {
			r.Logger.WithFields(logrus.Fields{
				"collection": rep.Collection,
				"written":    rep.Written,
				"removed":    rep.Removed,
			}).Info("collection seeded")
		}
	}
	return reports, nil
}

func (r *Runner) apply(ctx context.Context, set Set) (Report, error) {
	coll := r.Store.Collection(set.Collection)
	rep := Report{Collection: set.Collection}

	switch r.Strategy {
	case StrategyReplace:
		if err := coll.DeleteAll(ctx); err != nil {
			return rep, err
		}
		if err := coll.InsertAll(ctx, set.Records); err != nil {
			return rep, err
		}
		rep.Written = len(set.Records)
		return rep, nil

	case StrategyUpsert, "":
		// Pruning by _id also drops stale duplicates of a natural key.
		ids := make([]any, 0, len(set.Records))
		for _, rec := range set.Records {
			id, err := coll.Upsert(ctx, set.KeyOf(rec), rec)
			if err != nil {
				return rep, err
			}
			ids = append(ids, id)
			rep.Written++
		}
		removed, err := coll.DeleteExcept(ctx, ids)
		if err != nil {
			return rep, err
		}
		rep.Removed = removed
		return rep, nil
	}
	return rep, fmt.Errorf("%w: %q", ErrUnknownStrategy, r.Strategy)
}
