// Package docstore implements the in-process document store the session
// engine replays actions against.
//
// A Store is a set of named collections. A Collection is an insertion
// ordered list of flat records (field name → string value). The store
// enforces no uniqueness constraints; callers enforce them at the operation
// level (e.g. "no two movies share a name").
//
// # Copy Semantics
//
// Every record crossing the API boundary is copied:
//   - Insert stores a copy of the caller's record
//   - FindOne, FindAll and All return copies
//
// Mutating a returned record never changes store state. The only mutation
// paths are Replace and ModifyField, so the unit of consistency is a
// FindOne → mutate → Replace sequence. These sequences are not atomic; the
// engine is single-writer and never interleaves two of them on one record.
//
// # Multi-valued Fields
//
// Lists (genres, actors, movie lists, notifications) are stored as a single
// delimited string. The sentinel value "null" stands for the empty list.
// Use EncodeList and DecodeList rather than splitting by hand.
package docstore
