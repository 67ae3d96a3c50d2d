package loader

import "fmt"

// Error codes shared with the CLI.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // File read error
	ErrCodeDecode      = "E003" // JSON/YAML syntax or unknown field
	ErrCodeSchema      = "E004" // Document does not match the CUE schema
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeInvalid     = "E006" // Structural validation failed
	ErrCodeFormat      = "E007" // Unsupported file extension
	ErrCodeWriteFailed = "E008" // Output write error
)

// LoadError is one problem found while loading a document.
type LoadError struct {
	Code    string
	Message string
	// Path locates the problem inside the document ("actions.3.type"),
	// when known.
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
