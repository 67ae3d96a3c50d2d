package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/streamtv/internal/loader"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Lenient bool
}

// ValidationIssue is one problem in a document.
type ValidationIssue struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool              `json:"valid"`
	Format  string            `json:"format,omitempty"`
	Users   int               `json:"users"`
	Movies  int               `json:"movies"`
	Actions int               `json:"actions"`
	Errors  []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Check an input document without replaying it",
		Long: `Check an input document against the document schema and the structural
rules for users, movies and actions. Every problem is reported, not just
the first.

Exit codes:
  0 - Document is valid
  1 - Document has errors
  2 - Command error (file not found, unsupported extension)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Lenient, "lenient", false, "skip the schema check and allow unknown fields")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	res, errs := loader.Load(path, loader.Options{
		Strict: !opts.Lenient,
		Mode:   loader.LoadModeCollectAll,
	})

	if len(errs) > 0 {
		if code, msg, ok := commandError(errs[0]); ok {
			return outputValidateError(formatter, code, msg)
		}
	}

	result := ValidationResult{Valid: len(errs) == 0}
	if res != nil {
		result.Format = res.Format.String()
		result.Users = len(res.Input.Users)
		result.Movies = len(res.Input.Movies)
		result.Actions = len(res.Input.Actions)
	}
	formatter.VerboseLog("Checked %s: %d user(s), %d movie(s), %d action(s)", path, result.Users, result.Movies, result.Actions)

	for _, err := range errs {
		result.Errors = append(result.Errors, toIssue(err))
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// commandError reports whether err means the document could not be read
// at all, as opposed to being read and found invalid.
func commandError(err error) (code, message string, ok bool) {
	var loadErr *loader.LoadError
	if !errors.As(err, &loadErr) {
		return "", "", false
	}
	switch loadErr.Code {
	case loader.ErrCodeNotFound, loader.ErrCodeReadFailed, loader.ErrCodeFormat:
		return loadErr.Code, loadErr.Message, true
	}
	return "", "", false
}

func toIssue(err error) ValidationIssue {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		return ValidationIssue{Code: loadErr.Code, Path: loadErr.Path, Message: loadErr.Message}
	}
	return ValidationIssue{Code: loader.ErrCodeGeneric, Message: err.Error()}
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Document valid (%d user(s), %d movie(s), %d action(s))\n",
		result.Users, result.Movies, result.Actions)
	return nil
}

// outputValidateError outputs an error that stopped validation.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs every problem found in the document.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	first := result.Errors[0]
	if err := formatter.Failure(first.Code, first.Message, result); err != nil {
		return err
	}

	if !formatter.JSON() {
		fmt.Fprintln(formatter.Writer, "✗ Validation failed")
		fmt.Fprintln(formatter.Writer)
		for _, issue := range result.Errors {
			if issue.Path != "" {
				fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n", issue.Code, issue.Path, issue.Message)
			} else {
				fmt.Fprintf(formatter.Writer, "  %s: %s\n", issue.Code, issue.Message)
			}
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
