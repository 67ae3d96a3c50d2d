// Package digest computes content-addressed identities for replay data.
//
// Values are first encoded as JSON, then re-serialized in canonical form
// (RFC 8785 key ordering, NFC-normalized strings, no insignificant
// whitespace) and hashed with SHA-256 under a versioned domain prefix. Two
// runs that execute the same actions and produce the same records have
// identical digests, which is what the replay command checks.
package digest
