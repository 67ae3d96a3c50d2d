package engine

import (
	"context"
	"fmt"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
)

// Result is the outcome of a complete replay.
type Result struct {
	// Records is the output document: one entry per non-silent action,
	// then the recommendation record if one was issued.
	Records []model.Record

	// Users holds the users collection as it was just before the store was
	// cleared, for inspection by tests and the harness.
	Users []docstore.Record

	// Movies holds the final catalog.
	Movies []docstore.Record

	// LastSeq is the seq of the last executed action.
	LastSeq int64
}

// Simulate runs the full session lifecycle for in: a fresh store is
// bootstrapped, a guest session replays every action, the session is
// finished and the store is cleared.
func Simulate(ctx context.Context, in model.Input, opts ...Option) (*Result, error) {
	store := docstore.New()
	e := New(store, opts...)

	if err := Bootstrap(store, in, e.rules); err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	defer store.DropAll()

	records, err := e.Run(ctx, in.Actions)
	if err != nil {
		return nil, err
	}
	records = append(records, e.Finish(ctx)...)
	if records == nil {
		records = []model.Record{}
	}

	res := &Result{
		Records: records,
		LastSeq: e.clock.Current(),
	}
	res.Users, _ = store.Collection(docstore.Users).All()
	res.Movies, _ = store.Collection(docstore.Movies).All()
	return res, nil
}
