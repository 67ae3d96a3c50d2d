package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/model"
	"github.com/roach88/streamtv/internal/session"
)

// Entry is one executed action as handed to a Recorder.
type Entry struct {
	Seq     int64
	Kind    string
	Action  model.Action
	Records []model.Record
}

// Recorder receives every executed action, in order. The journal
// implements it.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Engine owns the store and the current session for one replay.
//
// Not safe for concurrent use: Run, Execute and Finish must be called from
// one goroutine.
type Engine struct {
	store    *docstore.Store
	session  *session.Session
	rules    session.Rules
	clock    *Clock
	logger   *slog.Logger
	metrics  *Metrics
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules overrides the default price list.
func WithRules(r session.Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics reports counters to m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithRecorder hands every executed action to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock sets the logical clock. Used by replay to resume numbering.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New creates an engine over s with a guest session.
func New(s *docstore.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		session: session.NewGuest(),
		rules:   session.DefaultRules(),
		clock:   NewClock(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the current session.
func (e *Engine) Session() *session.Session {
	return e.session
}

// Rules returns the price list in effect.
func (e *Engine) Rules() session.Rules {
	return e.rules
}

// Clock returns the engine's logical clock.
func (e *Engine) Clock() *Clock {
	return e.clock
}

// Run executes actions strictly in input order and returns every record
// they produced. It stops early only on a boundary failure: a recorder
// error or a cancelled context.
func (e *Engine) Run(ctx context.Context, actions []model.Action) ([]model.Record, error) {
	q := newReadyQueue(len(actions))
	for _, a := range actions {
		q.Enqueue(pending{action: a, op: Decode(a)})
	}

	e.logger.Info("run starting", "actions", q.Len())

	var out []model.Record
	for {
		p, ok := q.TryDequeue()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		seq := e.clock.Next()
		records := e.Execute(ctx, p.op)
		out = append(out, records...)

		if e.recorder != nil {
			entry := Entry{Seq: seq, Kind: p.op.Kind(), Action: p.action, Records: records}
			if err := e.recorder.Record(ctx, entry); err != nil {
				return out, NewRecorderError(seq, err)
			}
		}
	}

	e.logger.Info("run finished", "records", len(out), "seq", e.clock.Current())
	return out, nil
}

// Execute runs one operation and returns its output records.
func (e *Engine) Execute(ctx context.Context, op Op) []model.Record {
	e.metrics.action(op.Kind())
	e.logger.Debug("executing", "op", op.Kind(), "page", e.session.Page().String())

	var records []model.Record
	switch o := op.(type) {
	case ChangePage:
		records = e.changePage(o)
	case Back:
		records = e.back()
	case Register:
		records = e.register(o)
	case Login:
		records = e.login(o)
	case Search:
		records = e.search(o)
	case Filter:
		records = e.filter(o)
	case BuyTokens:
		records = e.buyTokens(o)
	case BuyPremium:
		records = e.buyPremium()
	case Purchase:
		records = e.purchase()
	case Watch:
		records = e.watch()
	case Like:
		records = e.like(ctx)
	case Rate:
		records = e.rate(ctx, o)
	case Subscribe:
		records = e.subscribe(ctx, o)
	case AddMovie:
		records = e.addMovie(o)
	case DeleteMovie:
		records = e.deleteMovie(o)
	case Invalid:
		records = e.reject(op, o.Reason)
	default:
		records = e.reject(op, "unsupported operation")
	}
	return records
}

// Finish ends the session: a premium account gets its recommendation,
// then the session is flushed into the users collection.
func (e *Engine) Finish(ctx context.Context) []model.Record {
	var out []model.Record
	if acc := e.session.Account(); acc != nil && acc.IsPremium() {
		out = append(out, e.recommend(ctx))
	}
	e.flush()
	return out
}

// reject logs a rejected operation and returns the standard error record.
func (e *Engine) reject(op Op, reason string) []model.Record {
	e.metrics.rejection(op.Kind())
	e.logger.Debug("rejected", "op", op.Kind(), "reason", reason, "page", e.session.Page().String())
	return []model.Record{model.ErrorRecord()}
}

// noop reports a structural impossibility: the operation expected a
// catalog entry that is gone. Nothing is emitted.
func (e *Engine) noop(ctx context.Context, op Op, movie string) []model.Record {
	e.metrics.structuralNoop(op.Kind())
	e.logger.WarnContext(ctx, "catalog entry missing, skipping", "op", op.Kind(), "movie", movie)
	return nil
}

// success returns a record with the given movies and the session snapshot.
func (e *Engine) success(movies []model.MovieView) []model.Record {
	return []model.Record{{
		CurrentMoviesList: movies,
		CurrentUser:       e.snapshot(),
	}}
}

func (e *Engine) movies() catalog {
	return catalog{c: e.store.Collection(docstore.Movies)}
}

func (e *Engine) users() *docstore.Collection {
	return e.store.Collection(docstore.Users)
}

// flush writes the active account back into its users record.
func (e *Engine) flush() {
	acc := e.session.Account()
	if acc == nil {
		return
	}
	users := e.users()
	if users == nil || !users.Replace(session.FieldName, acc.Name, acc.Record()) {
		e.logger.Warn("user record missing on flush", "user", acc.Name)
	}
}
