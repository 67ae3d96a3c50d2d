package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/roach88/streamtv/internal/config"
	"github.com/roach88/streamtv/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Journal  string
	RunToken string
	Kind     string // optional - filter to one action kind
}

// TraceEvent is one journaled action in the timeline.
type TraceEvent struct {
	Seq           int64          `json:"seq"`
	Kind          string         `json:"kind"`
	Action        map[string]any `json:"action,omitempty"`
	Records       int            `json:"records"`
	Failed        bool           `json:"failed"`
	ActionDigest  string         `json:"action_digest"`
	RecordsDigest string         `json:"records_digest"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalEntries int            `json:"total_entries"`
	ErrorRecords int            `json:"error_records"`
	ByKind       map[string]int `json:"by_kind"`
	LastSeq      int64          `json:"last_seq"`
	Finished     bool           `json:"finished"`
}

// TraceResult holds the complete trace output for one run.
type TraceResult struct {
	RunToken    string       `json:"run_token"`
	InputDigest string       `json:"input_digest"`
	Timeline    []TraceEvent `json:"timeline"`
	Stats       TraceStats   `json:"stats"`
}

// RunListing is one line of the run list printed without --run.
type RunListing struct {
	RunToken string `json:"run_token"`
	LastSeq  int64  `json:"last_seq"`
	Finished bool   `json:"finished"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the action timeline of a journaled run",
		Long: `Show the journaled timeline of a run: every action in seq order with
the number of records it produced and whether it was rejected.

Without --run, lists the runs in the journal.

Examples:
  streamtv trace --journal ./runs.db
  streamtv trace --journal ./runs.db --run 0190c7e4-...
  streamtv trace --journal ./runs.db --run 0190c7e4-... --kind purchase
  streamtv trace --journal ./runs.db --run 0190c7e4-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite run journal")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to trace")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter to one action kind (e.g. purchase)")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions, cmd, map[string]string{config.KeyJournalPath: "journal"})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := requireJournal(cfg.Journal.Path); err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	if opts.RunToken == "" {
		runs, err := j.Runs(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		return outputRunList(formatter, runs)
	}

	run, err := j.Run(ctx, opts.RunToken)
	if errors.Is(err, journal.ErrRunNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunToken))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	entries, err := j.Entries(ctx, opts.RunToken, opts.Kind)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read entries", err)
	}

	result, err := buildTrace(run, entries)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to decode entries", err)
	}

	if formatter.JSON() {
		return formatter.Encode(CLIResponse{Status: "ok", Data: result, RunToken: result.RunToken})
	}
	return outputTraceText(formatter, result)
}

// buildTrace turns journal rows into the timeline and its statistics.
func buildTrace(run journal.Run, entries []journal.EntryRow) (TraceResult, error) {
	result := TraceResult{
		RunToken:    run.Token,
		InputDigest: run.InputDigest,
		Timeline:    make([]TraceEvent, 0, len(entries)),
		Stats: TraceStats{
			ByKind:   make(map[string]int),
			LastSeq:  run.LastSeq,
			Finished: run.Finished,
		},
	}

	for _, e := range entries {
		var action map[string]any
		if err := json.Unmarshal([]byte(e.Action), &action); err != nil {
			return result, fmt.Errorf("decode action seq=%d: %w", e.Seq, err)
		}
		records, err := e.Output()
		if err != nil {
			return result, err
		}

		event := TraceEvent{
			Seq:           e.Seq,
			Kind:          e.Kind,
			Action:        action,
			Records:       len(records),
			ActionDigest:  e.ActionDigest,
			RecordsDigest: e.RecordsDigest,
		}
		for _, rec := range records {
			if rec.Failed() {
				event.Failed = true
				result.Stats.ErrorRecords++
			}
		}

		result.Timeline = append(result.Timeline, event)
		result.Stats.ByKind[e.Kind]++
	}
	result.Stats.TotalEntries = len(result.Timeline)
	return result, nil
}

func outputRunList(formatter *OutputFormatter, runs []journal.Run) error {
	listing := make([]RunListing, 0, len(runs))
	for _, r := range runs {
		listing = append(listing, RunListing{RunToken: r.Token, LastSeq: r.LastSeq, Finished: r.Finished})
	}

	if formatter.JSON() {
		return formatter.Success(listing)
	}

	w := formatter.Writer
	if len(listing) == 0 {
		fmt.Fprintln(w, "No runs found in journal.")
		return nil
	}
	fmt.Fprintf(w, "Runs: %d\n", len(listing))
	for _, r := range listing {
		fmt.Fprintf(w, "  %s  seq=%d  %s\n", r.RunToken, r.LastSeq, completeStatus(r.Finished))
	}
	return nil
}

// outputTraceText outputs the trace result as text.
func outputTraceText(formatter *OutputFormatter, result TraceResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Trace for Run: %s\n", result.RunToken)
	fmt.Fprintf(w, "Status: %s\n", completeStatus(result.Stats.Finished))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no entries)")
	}
	for _, event := range result.Timeline {
		formatTimelineEvent(w, event, formatter.Verbose)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Entries:       %d\n", result.Stats.TotalEntries)
	fmt.Fprintf(w, "  Error records: %d\n", result.Stats.ErrorRecords)
	fmt.Fprintf(w, "  Last seq:      %d\n", result.Stats.LastSeq)
	for _, kind := range sortedKinds(result.Stats.ByKind) {
		fmt.Fprintf(w, "  %-20s %d\n", kind+":", result.Stats.ByKind[kind])
	}
	return nil
}

// formatTimelineEvent formats a single timeline event for text output.
func formatTimelineEvent(w io.Writer, event TraceEvent, verbose bool) {
	mark := ""
	if event.Failed {
		mark = " ✗"
	}
	fmt.Fprintf(w, "  [%d] %s -> %d record(s)%s\n", event.Seq, event.Kind, event.Records, mark)
	if verbose {
		fmt.Fprintf(w, "       Action: %s\n", formatArgs(event.Action))
		fmt.Fprintf(w, "       Digest: %s\n", truncateID(event.RecordsDigest))
	}
}

func sortedKinds(m map[string]int) []string {
	kinds := make([]string, 0, len(m))
	for k := range m {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// formatArgs formats a map for display with sorted keys.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatValue(args[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatValue formats a single value, recursing into objects and arrays.
func formatValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return formatArgs(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = formatValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncateID shortens a long token or digest for display.
func truncateID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}

// completeStatus returns a human-readable run status.
func completeStatus(finished bool) string {
	if finished {
		return "Finished"
	}
	return "Unfinished (interrupted run)"
}
