// Package model holds the boundary types of a replay: the input document
// (users, catalog, ordered actions) and the output records produced for
// each action.
//
// Field names follow the document format consumed and produced by the
// CLI, so the same structs serve the JSON and YAML loaders and the output
// writer without intermediate DTOs.
package model
