package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/journal"
)

// Harness executes one scenario against a private in-memory journal.
type Harness struct {
	journal *journal.Journal
	token   string
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory journal under a fixed run token,
// so two runs of the same scenario produce identical traces. An error is
// returned only when the replay itself cannot run; failed assertions are
// reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	if !scenario.resolved() {
		if err := scenario.Resolve(); err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
	}

	j, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer j.Close()

	h := &Harness{
		journal: j,
		token:   scenario.Token(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	ctx := context.Background()
	result, err := h.execute(ctx, scenario)
	if err != nil {
		return nil, err
	}

	actx := &AssertionContext{
		Journal: j,
		Token:   h.token,
		Ctx:     ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

// execute replays the document into the journal and reads the trace back.
func (h *Harness) execute(ctx context.Context, scenario *Scenario) (*Result, error) {
	res, err := h.journal.Capture(ctx, h.token, scenario.Doc(), scenario.PriceList(), engine.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to replay scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Records = res.Records
	result.Users = res.Users
	result.Movies = res.Movies

	entries, err := h.journal.Entries(ctx, h.token, "")
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	for _, e := range entries {
		records, err := e.Output()
		if err != nil {
			return nil, err
		}
		result.AddTrace(e.Seq, e.Kind, records)
	}
	return result, nil
}
