package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/streamtv/internal/digest"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/testutil"
)

// TraceSnapshot is the golden form of a scenario execution.
type TraceSnapshot struct {
	ScenarioName string         `json:"scenario_name"`
	RunToken     string         `json:"run_token"`
	Trace        []TraceEvent   `json:"trace"`
	Records      []model.Record `json:"records"`
}

// Token returns the run token the scenario executes under.
func (s *Scenario) Token() string {
	return testutil.NewFixedRunToken(s.RunToken).Generate()
}

// Snapshot encodes result as canonical JSON for golden comparison.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	return digest.Canonical(TraceSnapshot{
		ScenarioName: scenario.Name,
		RunToken:     scenario.Token(),
		Trace:        result.Trace,
		Records:      result.Records,
	})
}

// RunWithGolden executes a scenario and compares its snapshot with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result with the scenario's
// golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
