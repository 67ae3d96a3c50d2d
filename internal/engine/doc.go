// Package engine replays a batch of user actions against one document
// store and one session.
//
// ARCHITECTURE:
//
// Single-Writer Replay Loop:
// Actions are decoded into typed operations (Op) and pushed onto a FIFO
// ready queue. Run drains the queue on the calling goroutine, one
// operation at a time, in input order. Every operation reads and writes
// the Store and the current Session directly; nothing is batched,
// reordered or retried.
//
// Processing Flow:
//  1. Bootstrap seeds the users and movies collections
//  2. Run stamps each action with a logical seq from Clock.Next()
//  3. Execute dispatches on the Op variant and returns its output records
//  4. A configured Recorder receives (seq, action, records) for the journal
//  5. Finish issues the premium recommendation and flushes the session
//
// Catalog additions and deletions fan out to every stored user (refunds,
// notifications) through Fanout; the end-of-run recommendation is the pure
// function Recommend.
//
// Rejected actions never surface as Go errors. They produce the standard
// error record and leave state untouched. Go errors are reserved for
// boundary failures (see RuntimeError).
package engine
