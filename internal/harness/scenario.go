package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/streamtv/internal/loader"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Scenario is one conformance test.
type Scenario struct {
	// Name identifies the scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Input is the path of the replay document, relative to the scenario
	// file. Exactly one of Input and Document is set.
	Input string `yaml:"input,omitempty"`

	// Document is an inline replay document.
	Document *model.Input `yaml:"document,omitempty"`

	// Rules overrides the default price list.
	Rules *session.Rules `yaml:"rules,omitempty"`

	// RunToken is the journal token for the run. Defaults to
	// testutil.DefaultRunToken.
	RunToken string `yaml:"run_token,omitempty"`

	// Assertions are evaluated after the replay.
	Assertions []Assertion `yaml:"assertions"`

	// doc is the resolved replay document.
	doc    model.Input
	loaded bool
}

// Assertion checks one property of a finished replay.
type Assertion struct {
	Type string `yaml:"type"`

	// Index selects a record (record_error, record_movies, record_user).
	Index *int `yaml:"index,omitempty"`

	// Count is the expected number (record_count, error_count,
	// trace_count).
	Count *int `yaml:"count,omitempty"`

	// Kind is an action kind such as "purchase" (trace_count).
	Kind string `yaml:"kind,omitempty"`

	// Kinds is the expected order of action kinds (trace_order).
	Kinds []string `yaml:"kinds,omitempty"`

	// Movies is the expected movie list (record_movies).
	Movies []string `yaml:"movies,omitempty"`

	// User and Movie select a final collection record.
	User  string `yaml:"user,omitempty"`
	Movie string `yaml:"movie,omitempty"`

	// Expect holds expected field values (record_user, final_user,
	// final_movie). Only the listed fields are compared.
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertRecordCount   = "record_count"
	AssertErrorCount    = "error_count"
	AssertRecordError   = "record_error"
	AssertRecordMovies  = "record_movies"
	AssertRecordUser    = "record_user"
	AssertTraceCount    = "trace_count"
	AssertTraceOrder    = "trace_order"
	AssertFinalUser     = "final_user"
	AssertFinalMovie    = "final_movie"
	AssertDeterministic = "deterministic"
)

// Doc returns the resolved replay document.
func (s *Scenario) Doc() model.Input {
	return s.doc
}

// PriceList returns the scenario's rules, or the defaults.
func (s *Scenario) PriceList() session.Rules {
	if s.Rules != nil {
		return *s.Rules
	}
	return session.DefaultRules()
}

// LoadScenario reads and checks a scenario file, resolving its input
// document relative to the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Input != "" && !filepath.IsAbs(scenario.Input) {
		scenario.Input = filepath.Join(filepath.Dir(path), scenario.Input)
	}

	if err := scenario.Resolve(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Resolve checks the scenario and loads its document. LoadScenario calls
// it; scenarios built in code must call it before Run.
func (s *Scenario) Resolve() error {
	if err := validateScenario(s); err != nil {
		return err
	}

	if s.Document != nil {
		if errs := loader.Validate(s.Document); len(errs) > 0 {
			return fmt.Errorf("document: %w", errors.Join(errs...))
		}
		s.doc = *s.Document
		s.loaded = true
		return nil
	}

	res, errs := loader.Load(s.Input, loader.Options{Mode: loader.LoadModeFailFast})
	if len(errs) > 0 {
		return fmt.Errorf("input: %w", errs[0])
	}
	s.doc = res.Input
	s.loaded = true
	return nil
}

func (s *Scenario) resolved() bool {
	return s.loaded
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if (s.Input == "") == (s.Document == nil) {
		return fmt.Errorf("exactly one of input and document is required")
	}
	if s.Rules != nil {
		if s.Rules.PremiumCost < 0 || s.Rules.MovieCost < 0 || s.Rules.FreePremiumMovies < 0 {
			return fmt.Errorf("rules must not be negative")
		}
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	needIndex := func() error {
		if a.Index == nil {
			return fmt.Errorf("assertions[%d]: index is required for %s", index, a.Type)
		}
		if *a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative", index)
		}
		return nil
	}
	needCount := func() error {
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
		return nil
	}

	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRecordCount, AssertErrorCount:
		return needCount()
	case AssertRecordError:
		return needIndex()
	case AssertRecordMovies:
		if a.Movies == nil {
			return fmt.Errorf("assertions[%d]: movies is required for record_movies (use [] for none)", index)
		}
		return needIndex()
	case AssertRecordUser:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for record_user", index)
		}
		return needIndex()
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		return needCount()
	case AssertTraceOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for trace_order", index)
		}
	case AssertFinalUser:
		if a.User == "" {
			return fmt.Errorf("assertions[%d]: user is required for final_user", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_user", index)
		}
	case AssertFinalMovie:
		if a.Movie == "" {
			return fmt.Errorf("assertions[%d]: movie is required for final_movie", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_movie", index)
		}
	case AssertDeterministic:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
