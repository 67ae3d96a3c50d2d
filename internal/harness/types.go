package harness

import (
	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
)

// TraceEvent is one executed action as the journal recorded it.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Kind    string `json:"kind"`
	Records int    `json:"records"`
	Failed  bool   `json:"failed"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Records is the output document of the replay.
	Records []model.Record `json:"records"`

	// Trace lists every executed action in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per failed assertion.
	Errors []string `json:"errors,omitempty"`

	// Users and Movies are the collections as they stood at the end of
	// the session.
	Users  []docstore.Record `json:"-"`
	Movies []docstore.Record `json:"-"`
}

// NewResult creates a passing result with no records.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Records: []model.Record{},
		Trace:   []TraceEvent{},
		Errors:  []string{},
	}
}

// AddError records a failed assertion.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends one executed action.
func (r *Result) AddTrace(seq int64, kind string, records []model.Record) {
	failed := false
	for _, rec := range records {
		if rec.Failed() {
			failed = true
		}
	}
	r.Trace = append(r.Trace, TraceEvent{
		Seq:     seq,
		Kind:    kind,
		Records: len(records),
		Failed:  failed,
	})
}

// ErrorCount returns the number of error records.
func (r *Result) ErrorCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Failed() {
			n++
		}
	}
	return n
}
