package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/streamtv/internal/config"
	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Journal  string
	RunToken string // optional - specific run only
}

// DivergenceView is one entry whose replayed digest differs.
type DivergenceView struct {
	Seq   int64  `json:"seq"`
	Kind  string `json:"kind"`
	Field string `json:"field"`
	Want  string `json:"want,omitempty"`
	Got   string `json:"got,omitempty"`
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunToken      string           `json:"run_token"`
	Entries       int              `json:"entries"`
	InputMatch    bool             `json:"input_match"`
	OutputMatch   bool             `json:"output_match"`
	Divergences   []DivergenceView `json:"divergences,omitempty"`
	Deterministic bool             `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-execute journaled runs and verify determinism",
		Long: `Re-execute journaled runs from their stored input document and price
list, and compare every action and record digest with the journal.

Exit codes:
  0 - All runs are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (journal not found, unknown run, etc.)

Examples:
  streamtv replay --journal ./runs.db
  streamtv replay --journal ./runs.db --run 0190c7e4-...
  streamtv replay --journal ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite run journal")
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions, cmd.ErrOrStderr())

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

	ctx, stop := interruptContext(cmd)
	defer stop()

	var tokens []string
	if opts.RunToken != "" {
		tokens = []string{opts.RunToken}
	} else {
		runs, err := j.Runs(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		for _, r := range runs {
			tokens = append(tokens, r.Token)
		}
	}

	formatter := newFormatter(opts.RootOptions, cmd)
	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(tokens)),
		TotalRuns:        len(tokens),
		AllDeterministic: true,
	}

	if len(tokens) == 0 {
		if formatter.JSON() {
			return outputReplayJSON(formatter, result)
		}
		fmt.Fprintln(formatter.Writer, "No runs found in journal.")
		return nil
	}

	for _, token := range tokens {
		rep, err := j.Replay(ctx, token, engine.WithLogger(logger))
		if errors.Is(err, journal.ErrRunNotFound) {
			return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", token))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", token), err)
		}

		run := toReplayRunResult(rep)
		result.Runs = append(result.Runs, run)
		if !run.Deterministic {
			result.AllDeterministic = false
			logger.Warn("run diverged", "run", token, "divergences", len(run.Divergences))
		}
	}

	if formatter.JSON() {
		return outputReplayJSON(formatter, result)
	}
	return outputReplayText(formatter, result)
}

func toReplayRunResult(rep journal.ReplayReport) ReplayRunResult {
	out := ReplayRunResult{
		RunToken:      rep.Token,
		Entries:       rep.Entries,
		InputMatch:    rep.InputMatch,
		OutputMatch:   rep.OutputMatch,
		Deterministic: rep.Deterministic(),
	}
	for _, d := range rep.Divergences {
		out.Divergences = append(out.Divergences, DivergenceView{
			Seq:   d.Seq,
			Kind:  d.Kind,
			Field: d.Field,
			Want:  d.Want,
			Got:   d.Got,
		})
	}
	return out
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(formatter *OutputFormatter, result ReplayResult) error {
	if result.AllDeterministic {
		return formatter.Success(result)
	}
	if err := formatter.Failure("E_DETERMINISM", "determinism verification failed", result); err != nil {
		return err
	}
	return NewExitError(ExitFailure, "determinism verification failed")
}

// outputReplayText outputs the replay result as text.
func outputReplayText(formatter *OutputFormatter, result ReplayResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Replay Summary: %d run(s)\n", result.TotalRuns)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.Deterministic {
			status = "✗"
		}
		fmt.Fprintf(w, "%s Run: %s\n", status, run.RunToken)
		fmt.Fprintf(w, "  Entries: %d\n", run.Entries)

		if formatter.Verbose || !run.Deterministic {
			fmt.Fprintf(w, "  Input digest:  %s\n", matchStatus(run.InputMatch))
			fmt.Fprintf(w, "  Output digest: %s\n", matchStatus(run.OutputMatch))
		}
		for _, d := range run.Divergences {
			fmt.Fprintf(w, "  [%d] %s: %s digest differs (want %s, got %s)\n",
				d.Seq, d.Kind, d.Field, truncateID(d.Want), truncateID(d.Got))
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All runs verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}

func matchStatus(ok bool) string {
	if ok {
		return "match"
	}
	return "MISMATCH"
}
