package journal

import (
	"context"

	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Capture replays in under token and journals every action. The run is
// marked finished only when the replay completes.
func (j *Journal) Capture(ctx context.Context, token string, in model.Input, rules session.Rules, opts ...engine.Option) (*engine.Result, error) {
	if err := j.BeginRun(ctx, token, in, rules); err != nil {
		return nil, err
	}

	opts = append(opts, engine.WithRules(rules), engine.WithRecorder(j.Recorder(token)))
	res, err := engine.Simulate(ctx, in, opts...)
	if err != nil {
		return nil, err
	}

	if err := j.FinishRun(ctx, token, res.LastSeq, res.Records); err != nil {
		return nil, err
	}
	return res, nil
}
