// Package session implements the per-connection state machine: the page
// navigation stack, the movie lists a user builds up (purchased, watched,
// liked, rated), and the account economics (balance, tokens, free premium
// allowance).
//
// A Session is either a guest or an active account. Business operations
// are guard-and-mutate: each returns a success flag and touches state only
// when it succeeds. Which page an operation may run from is decided by the
// caller; the state machine itself only tracks where the user is.
//
// Invariants held by every active session:
//   - tokens and the free premium allowance never go negative
//   - a watched movie was purchased first
//   - a liked or rated movie was watched first
//   - a movie is purchased at most once
package session
