// Package testutil provides fixtures shared by the engine, journal, CLI and
// harness tests: a small catalog, a handful of accounts, action builders
// and a fixed run token generator.
package testutil
