package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/streamtv/internal/config"
	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/journal"
	"github.com/roach88/streamtv/internal/loader"
	"github.com/roach88/streamtv/internal/model"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string
	Metrics string
	Out     string
	Pretty  bool
	Strict  bool

	// TokenGenerator names journaled runs. Defaults to UUIDv7Generator.
	TokenGenerator engine.RunTokenGenerator
}

// RunSummary describes a finished run.
type RunSummary struct {
	RunToken string `json:"run_token,omitempty"`
	Records  int    `json:"records"`
	Errors   int    `json:"errors"`
	Output   string `json:"output"`
	LastSeq  int64  `json:"last_seq"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Replay an input document and write the output records",
		Long: `Replay an input document (JSON or YAML) and write the output document:
a JSON array with one record per action that produced output.

With --journal the run, every action and its records are stored in a
SQLite journal for later trace and replay. With --metrics the run's
counters are written as a Prometheus textfile.

Prices come from the config file or STREAMTV_RULES_* variables.

Examples:
  streamtv run input.json
  streamtv run input.yaml --out out.json --pretty
  streamtv run input.json --journal ./runs.db --metrics ./streamtv.prom`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite run journal")
	cmd.Flags().StringVar(&opts.Metrics, "metrics", "", "path to write Prometheus metrics textfile")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "indent the output document")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "check the document against the schema and reject unknown fields")

	return cmd
}

func runSession(opts *RunOptions, inputPath string, cmd *cobra.Command) error {
	logger := setupLogging(opts.RootOptions, cmd.ErrOrStderr())

	cfg, err := loadConfig(opts.RootOptions, cmd, map[string]string{
		config.KeyJournalPath:  "journal",
		config.KeyMetricsPath:  "metrics",
		config.KeyOutputPretty: "pretty",
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	loaded, errs := loader.Load(inputPath, loader.Options{Strict: opts.Strict, Mode: loader.LoadModeFailFast})
	if len(errs) > 0 {
		return WrapExitError(ExitCommandError, "failed to load input", errs[0])
	}
	in := loaded.Input
	logger.Info("input loaded",
		"path", inputPath,
		"format", loaded.Format.String(),
		"users", len(in.Users),
		"movies", len(in.Movies),
		"actions", len(in.Actions))

	ctx, stop := interruptContext(cmd)
	defer stop()

	reg := prometheus.NewRegistry()
	engineOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithMetrics(engine.NewMetrics(reg)),
	}

	summary := RunSummary{Output: opts.Out}
	var res *engine.Result
	if cfg.Journal.Path != "" {
		summary.RunToken, res, err = runJournaled(ctx, opts, cfg, in, engineOpts)
	} else {
		res, err = engine.Simulate(ctx, in, append(engineOpts, engine.WithRules(cfg.Rules.Session()))...)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return WrapExitError(ExitFailure, "run interrupted", err)
		}
		return WrapExitError(ExitFailure, "run failed", err)
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.Out, res.Records, cfg.Output.Pretty); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	if cfg.Metrics.Path != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Path, reg); err != nil {
			return WrapExitError(ExitCommandError, "failed to write metrics", err)
		}
		logger.Debug("metrics written", "path", cfg.Metrics.Path)
	}

	summary.Records = len(res.Records)
	summary.LastSeq = res.LastSeq
	for _, rec := range res.Records {
		if rec.Failed() {
			summary.Errors++
		}
	}
	logger.Info("run complete", "records", summary.Records, "errors", summary.Errors, "run", summary.RunToken)

	// With stdout carrying the output document there is no room for a
	// summary.
	if opts.Out == "" {
		return nil
	}
	return outputRunSummary(newFormatter(opts.RootOptions, cmd), summary)
}

// runJournaled replays in while journaling it under a fresh run token.
func runJournaled(ctx context.Context, opts *RunOptions, cfg *config.Config, in model.Input, engineOpts []engine.Option) (string, *engine.Result, error) {
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return "", nil, err
	}
	defer j.Close()

	gen := opts.TokenGenerator
	if gen == nil {
		gen = engine.UUIDv7Generator{}
	}
	token := gen.Generate()

	res, err := j.Capture(ctx, token, in, cfg.Rules.Session(), engineOpts...)
	if err != nil {
		return token, nil, fmt.Errorf("run %s: %w", token, err)
	}
	return token, res, nil
}

// writeOutput writes the output document to path, or to stdout when path
// is empty.
func writeOutput(stdout io.Writer, path string, records []model.Record, pretty bool) error {
	if path == "" {
		return loader.WriteRecords(stdout, records, pretty)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := loader.WriteRecords(f, records, pretty); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func outputRunSummary(f *OutputFormatter, s RunSummary) error {
	if f.JSON() {
		return f.Encode(CLIResponse{Status: "ok", Data: s, RunToken: s.RunToken})
	}

	fmt.Fprintf(f.Writer, "✓ %d record(s) written to %s (%d error record(s))\n", s.Records, s.Output, s.Errors)
	if s.RunToken != "" {
		fmt.Fprintf(f.Writer, "  Run: %s\n", s.RunToken)
	}
	return nil
}
