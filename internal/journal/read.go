package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// ErrRunNotFound is returned for an unknown run token.
var ErrRunNotFound = errors.New("run not found")

// Run is one journaled replay.
type Run struct {
	Token        string `db:"token"`
	Input        string `db:"input"`
	InputDigest  string `db:"input_digest"`
	Rules        string `db:"rules"`
	Finished     bool   `db:"finished"`
	LastSeq      int64  `db:"last_seq"`
	OutputDigest string `db:"output_digest"`
}

// Document decodes the stored input document.
func (r Run) Document() (model.Input, error) {
	var in model.Input
	if err := json.Unmarshal([]byte(r.Input), &in); err != nil {
		return model.Input{}, fmt.Errorf("decode input of run %s: %w", r.Token, err)
	}
	return in, nil
}

// PriceList decodes the stored rules.
func (r Run) PriceList() (session.Rules, error) {
	var rules session.Rules
	if err := json.Unmarshal([]byte(r.Rules), &rules); err != nil {
		return session.Rules{}, fmt.Errorf("decode rules of run %s: %w", r.Token, err)
	}
	return rules, nil
}

// EntryRow is one stored action.
type EntryRow struct {
	RunToken      string `db:"run_token"`
	Seq           int64  `db:"seq"`
	Kind          string `db:"kind"`
	Action        string `db:"action"`
	ActionDigest  string `db:"action_digest"`
	Records       string `db:"records"`
	RecordsDigest string `db:"records_digest"`
}

// Output decodes the records the action produced.
func (e EntryRow) Output() ([]model.Record, error) {
	var out []model.Record
	if err := json.Unmarshal([]byte(e.Records), &out); err != nil {
		return nil, fmt.Errorf("decode records seq=%d: %w", e.Seq, err)
	}
	return out, nil
}

const runColumns = `token, input, input_digest, rules, finished, last_seq, output_digest`

// Run returns the run with the given token.
func (j *Journal) Run(ctx context.Context, token string) (Run, error) {
	var r Run
	err := j.db.GetContext(ctx, &r, `SELECT `+runColumns+` FROM runs WHERE token = ?`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	return r, nil
}

// Runs lists every run ordered by token. Returns an empty slice, not nil,
// for an empty journal.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	runs := []Run{}
	err := j.db.SelectContext(ctx, &runs, `SELECT `+runColumns+` FROM runs ORDER BY token COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

// Entries returns a run's entries ordered by seq. A non-empty kind keeps
// only entries of that operation kind.
func (j *Journal) Entries(ctx context.Context, token, kind string) ([]EntryRow, error) {
	query := `
		SELECT run_token, seq, kind, action, action_digest, records, records_digest
		FROM entries
		WHERE run_token = ?`
	args := []any{token}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY seq ASC`

	entries := []EntryRow{}
	if err := j.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}
