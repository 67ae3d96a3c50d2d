package journal

import (
	"context"
	"fmt"

	"github.com/roach88/streamtv/internal/digest"
	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// BeginRun registers a new run. The input document and rules are stored
// as canonical JSON so the run can be replayed later.
func (j *Journal) BeginRun(ctx context.Context, token string, in model.Input, rules session.Rules) error {
	input, err := digest.Canonical(in)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	inputDigest, err := digest.Input(in)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	rulesJSON, err := digest.Canonical(rules)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}

	_, err = j.db.NamedExecContext(ctx, `
		INSERT INTO runs (token, input, input_digest, rules)
		VALUES (:token, :input, :input_digest, :rules)
	`, Run{
		Token:       token,
		Input:       string(input),
		InputDigest: inputDigest,
		Rules:       string(rulesJSON),
	})
	if err != nil {
		return fmt.Errorf("begin run %s: %w", token, err)
	}
	return nil
}

// FinishRun marks a run complete and stores the digest of its output.
func (j *Journal) FinishRun(ctx context.Context, token string, lastSeq int64, records []model.Record) error {
	outDigest, err := digest.Records(records)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	res, err := j.db.ExecContext(ctx, `
		UPDATE runs SET finished = 1, last_seq = ?, output_digest = ?
		WHERE token = ?
	`, lastSeq, outDigest, token)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", token, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run %s: %w", token, ErrRunNotFound)
	}
	return nil
}

// RunRecorder writes the entries of one run. It implements
// engine.Recorder.
type RunRecorder struct {
	j     *Journal
	token string
}

// Recorder returns a recorder bound to the run token.
func (j *Journal) Recorder(token string) *RunRecorder {
	return &RunRecorder{j: j, token: token}
}

// Record appends e to the run. Writing the same seq twice is an error.
func (r *RunRecorder) Record(ctx context.Context, e engine.Entry) error {
	row, err := newEntryRow(r.token, e)
	if err != nil {
		return err
	}
	_, err = r.j.db.NamedExecContext(ctx, `
		INSERT INTO entries (run_token, seq, kind, action, action_digest, records, records_digest)
		VALUES (:run_token, :seq, :kind, :action, :action_digest, :records, :records_digest)
	`, row)
	if err != nil {
		return fmt.Errorf("write entry seq=%d: %w", e.Seq, err)
	}
	return nil
}

func newEntryRow(token string, e engine.Entry) (EntryRow, error) {
	action, err := digest.Canonical(e.Action)
	if err != nil {
		return EntryRow{}, fmt.Errorf("encode action seq=%d: %w", e.Seq, err)
	}
	actionDigest, err := digest.Action(e.Seq, e.Action)
	if err != nil {
		return EntryRow{}, fmt.Errorf("digest action seq=%d: %w", e.Seq, err)
	}
	records := e.Records
	if records == nil {
		records = []model.Record{}
	}
	recordsJSON, err := digest.Canonical(records)
	if err != nil {
		return EntryRow{}, fmt.Errorf("encode records seq=%d: %w", e.Seq, err)
	}
	recordsDigest, err := digest.Records(records)
	if err != nil {
		return EntryRow{}, fmt.Errorf("digest records seq=%d: %w", e.Seq, err)
	}
	return EntryRow{
		RunToken:      token,
		Seq:           e.Seq,
		Kind:          e.Kind,
		Action:        string(action),
		ActionDigest:  actionDigest,
		Records:       string(recordsJSON),
		RecordsDigest: recordsDigest,
	}, nil
}
