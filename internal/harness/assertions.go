package harness

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/roach88/streamtv/internal/docstore"
	"github.com/roach88/streamtv/internal/engine"
	"github.com/roach88/streamtv/internal/journal"
	"github.com/roach88/streamtv/internal/session"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			mark := ""
			if event.Failed {
				mark = " (error)"
			}
			fmt.Fprintf(&buf, "  [%d] %s%s\n", event.Seq, event.Kind, mark)
		}
	}
	return buf.String()
}

// AssertionContext gives deterministic assertions access to the journal.
type AssertionContext struct {
	Journal *journal.Journal
	Token   string
	Ctx     context.Context
}

// EvaluateAssertions evaluates all assertions against the result and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertRecordCount:
			err = assertCount(a.Type, "records", len(result.Records), *a.Count, result.Trace)
		case AssertErrorCount:
			err = assertCount(a.Type, "error records", result.ErrorCount(), *a.Count, result.Trace)
		case AssertRecordError:
			err = assertRecordError(result, a)
		case AssertRecordMovies:
			err = assertRecordMovies(result, a)
		case AssertRecordUser:
			err = assertRecordUser(result, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertFinalUser:
			err = assertFinalRecord(a.Type, result.Users, session.FieldName, a.User, a.Expect)
		case AssertFinalMovie:
			err = assertFinalRecord(a.Type, result.Movies, engine.FieldName, a.Movie, a.Expect)
		case AssertDeterministic:
			if actx == nil || actx.Journal == nil {
				err = fmt.Errorf("assertion[%d]: deterministic requires a journal", i)
			} else {
				err = assertDeterministic(actx)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}

func assertCount(typ, what string, got, want int, trace []TraceEvent) error {
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%d %s", want, what),
		Actual:   fmt.Sprintf("%d %s", got, what),
		Trace:    trace,
	}
}

// recordAt returns the record an assertion points at.
func recordAt(result *Result, a Assertion) (int, error) {
	i := *a.Index
	if i >= len(result.Records) {
		return 0, &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("record %d", i),
			Actual:   fmt.Sprintf("only %d records", len(result.Records)),
			Trace:    result.Trace,
		}
	}
	return i, nil
}

func assertRecordError(result *Result, a Assertion) error {
	i, err := recordAt(result, a)
	if err != nil {
		return err
	}
	if result.Records[i].Failed() {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("record %d to be an error", i),
		Actual:   "success record",
		Trace:    result.Trace,
	}
}

func assertRecordMovies(result *Result, a Assertion) error {
	i, err := recordAt(result, a)
	if err != nil {
		return err
	}
	got := result.Records[i].MovieNames()
	if slices.Equal(got, a.Movies) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("record %d movies %v", i, a.Movies),
		Actual:   fmt.Sprintf("%v", got),
		Trace:    result.Trace,
	}
}

func assertRecordUser(result *Result, a Assertion) error {
	i, err := recordAt(result, a)
	if err != nil {
		return err
	}
	user := result.Records[i].CurrentUser
	if user == nil {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("record %d to carry a user", i),
			Actual:   "currentUser is null",
			Trace:    result.Trace,
		}
	}

	actual, err := toGeneric(user)
	if err != nil {
		return err
	}
	expected, err := toGeneric(a.Expect)
	if err != nil {
		return err
	}
	if key, ok := matchFields(actual, expected); !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("record %d user field %q = %v", i, key, lookupPath(expected, key)),
			Actual:   fmt.Sprintf("%v", lookupPath(actual, key)),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceCount checks that kind was executed exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Kind == a.Kind {
			count++
		}
	}
	if count != *a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d occurrences of %s", *a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks that Kinds is a subsequence of the trace.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(a.Kinds) && event.Kind == a.Kinds[next] {
			next++
		}
	}
	if next == len(a.Kinds) {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("kinds in order: %v", a.Kinds),
		Actual:   fmt.Sprintf("%s not found after position %d", a.Kinds[next], next),
		Trace:    trace,
	}
}

// assertFinalRecord checks a collection record. Collection fields are
// strings, so expected values are compared in their printed form.
func assertFinalRecord(typ string, records []docstore.Record, key, value string, expect map[string]any) error {
	var found docstore.Record
	for _, rec := range records {
		if rec[key] == value {
			found = rec
			break
		}
	}
	if found == nil {
		return &AssertionError{
			Type:     typ,
			Expected: fmt.Sprintf("record where %s=%s", key, value),
			Actual:   "record not found",
		}
	}

	for _, field := range sortedKeys(expect) {
		want := fmt.Sprint(expect[field])
		got, ok := found[field]
		if !ok {
			return &AssertionError{
				Type:     typ,
				Expected: fmt.Sprintf("field %q to exist on %s", field, value),
				Actual:   "field not present",
			}
		}
		if got != want {
			return &AssertionError{
				Type:     typ,
				Expected: fmt.Sprintf("%s field %q = %q", value, field, want),
				Actual:   fmt.Sprintf("%q", got),
			}
		}
	}
	return nil
}

func assertDeterministic(actx *AssertionContext) error {
	rep, err := actx.Journal.Replay(actx.Ctx, actx.Token)
	if err != nil {
		return fmt.Errorf("deterministic: %w", err)
	}
	if rep.Deterministic() {
		return nil
	}
	return &AssertionError{
		Type:     AssertDeterministic,
		Expected: "replay to reproduce every digest",
		Actual: fmt.Sprintf("input match %v, output match %v, %d divergence(s)",
			rep.InputMatch, rep.OutputMatch, len(rep.Divergences)),
	}
}

// toGeneric round-trips v through JSON so YAML-decoded expectations and
// typed views compare on equal terms.
func toGeneric(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// matchFields reports whether actual contains every field of expected.
// Nested objects are matched the same way. On mismatch it returns the
// first differing key path.
func matchFields(actual, expected map[string]any) (string, bool) {
	for _, key := range sortedKeys(expected) {
		got, ok := actual[key]
		if !ok {
			return key, false
		}
		wantObj, wantIsObj := expected[key].(map[string]any)
		gotObj, gotIsObj := got.(map[string]any)
		if wantIsObj && gotIsObj {
			if sub, ok := matchFields(gotObj, wantObj); !ok {
				return key + "." + sub, false
			}
			continue
		}
		if !reflect.DeepEqual(got, expected[key]) {
			return key, false
		}
	}
	return "", true
}

// lookupPath resolves a dotted key path produced by matchFields.
func lookupPath(m map[string]any, path string) any {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[part]
	}
	return cur
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
