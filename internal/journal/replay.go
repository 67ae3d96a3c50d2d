package journal

import (
	"context"
	"fmt"

	"github.com/roach88/streamtv/internal/digest"
	"github.com/roach88/streamtv/internal/engine"
)

// Divergence is one entry whose replayed digest differs from the stored
// one. Want or Got is empty when the entry exists on one side only.
type Divergence struct {
	Seq   int64
	Kind  string
	Field string // "action" or "records"
	Want  string
	Got   string
}

// ReplayReport is the outcome of re-executing a journaled run.
type ReplayReport struct {
	Token       string
	Entries     int
	Divergences []Divergence

	// InputMatch is false when the stored document no longer hashes to
	// the digest taken when the run began.
	InputMatch bool

	// OutputMatch compares the replayed output document with the stored
	// output digest. Always false for an unfinished run.
	OutputMatch bool
}

// Deterministic reports whether the replay reproduced the run exactly.
func (r ReplayReport) Deterministic() bool {
	return r.InputMatch && r.OutputMatch && len(r.Divergences) == 0
}

// memoryRecorder collects entries without persisting them.
type memoryRecorder struct {
	entries []engine.Entry
}

func (m *memoryRecorder) Record(_ context.Context, e engine.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

// Replay re-executes the run token from its stored document and rules and
// compares every entry with the journal. opts are passed to the engine;
// a recorder option is overridden.
func (j *Journal) Replay(ctx context.Context, token string, opts ...engine.Option) (ReplayReport, error) {
	rep := ReplayReport{Token: token}

	run, err := j.Run(ctx, token)
	if err != nil {
		return rep, err
	}
	in, err := run.Document()
	if err != nil {
		return rep, err
	}
	rules, err := run.PriceList()
	if err != nil {
		return rep, err
	}
	stored, err := j.Entries(ctx, token, "")
	if err != nil {
		return rep, err
	}

	inputDigest, err := digest.Input(in)
	if err != nil {
		return rep, fmt.Errorf("replay %s: %w", token, err)
	}
	rep.InputMatch = inputDigest == run.InputDigest

	mem := &memoryRecorder{}
	opts = append(opts, engine.WithRules(rules), engine.WithRecorder(mem))
	res, err := engine.Simulate(ctx, in, opts...)
	if err != nil {
		return rep, fmt.Errorf("replay %s: %w", token, err)
	}

	replayed := make(map[int64]EntryRow, len(mem.entries))
	for _, e := range mem.entries {
		row, err := newEntryRow(token, e)
		if err != nil {
			return rep, fmt.Errorf("replay %s: %w", token, err)
		}
		replayed[e.Seq] = row
	}

	for _, want := range stored {
		got, ok := replayed[want.Seq]
		delete(replayed, want.Seq)
		switch {
		case !ok:
			rep.Divergences = append(rep.Divergences, Divergence{Seq: want.Seq, Kind: want.Kind, Field: "action", Want: want.ActionDigest})
		case got.ActionDigest != want.ActionDigest:
			rep.Divergences = append(rep.Divergences, Divergence{Seq: want.Seq, Kind: want.Kind, Field: "action", Want: want.ActionDigest, Got: got.ActionDigest})
		case got.RecordsDigest != want.RecordsDigest:
			rep.Divergences = append(rep.Divergences, Divergence{Seq: want.Seq, Kind: want.Kind, Field: "records", Want: want.RecordsDigest, Got: got.RecordsDigest})
		}
	}
	for _, e := range mem.entries {
		if got, extra := replayed[e.Seq]; extra {
			rep.Divergences = append(rep.Divergences, Divergence{Seq: e.Seq, Kind: e.Kind, Field: "action", Got: got.ActionDigest})
		}
	}
	rep.Entries = len(mem.entries)

	outDigest, err := digest.Records(res.Records)
	if err != nil {
		return rep, fmt.Errorf("replay %s: %w", token, err)
	}
	rep.OutputMatch = run.Finished && outDigest == run.OutputDigest
	return rep, nil
}
