// Package harness runs YAML conformance scenarios against the replay
// engine.
//
// A scenario names an input document (a path, or inline under document),
// an optional price list and a set of assertions. Run replays the document
// into an in-memory journal under a fixed run token, so the trace and
// golden snapshots are stable across runs, then evaluates every assertion
// against the emitted records, the trace and the final collections.
//
// Assertion types:
//
//	record_count    exactly count records were emitted
//	error_count     exactly count records are error records
//	record_error    records[index] is an error record
//	record_movies   records[index] lists exactly movies, in order
//	record_user     records[index].currentUser contains expect (subset match)
//	trace_count     action kind was executed exactly count times
//	trace_order     kinds appear in this order (gaps allowed)
//	final_user      the users record named user contains expect
//	final_movie     the movies record named movie contains expect
//	deterministic   replaying the journaled run reproduces every digest
//
// Golden snapshots live in testdata/golden and are compared with goldie:
//
//	go test ./internal/harness -update
package harness
