package testutil

// DefaultRunToken is the run token used when a test does not choose one.
const DefaultRunToken = "test-run-default"

// FixedRunToken generates the same run token every time, so journal
// contents and golden files are stable across test runs.
//
// Stateless and safe for concurrent use.
type FixedRunToken struct {
	token string
}

// NewFixedRunToken returns a generator for token, or DefaultRunToken if
// token is empty.
func NewFixedRunToken(token string) *FixedRunToken {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedRunToken{token: token}
}

// Generate returns the fixed token.
func (g *FixedRunToken) Generate() string {
	return g.token
}
