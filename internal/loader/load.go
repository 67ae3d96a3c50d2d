package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/roach88/streamtv/internal/model"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Options configures Load.
type Options struct {
	// Strict enables the CUE schema check and rejects unknown fields.
	Strict bool
	Mode   LoadMode
}

// Result is a loaded document.
type Result struct {
	Input  model.Input
	Format Format
	Size   int
}

// Load reads and checks the document at path. The result is nil only when
// the document could not be decoded.
func Load(path string, opts Options) (*Result, []error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, []error{err}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("document not found: %s", path), Err: err}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("read %s: %v", path, err), Err: err}}
	}

	return Parse(data, f, path, opts)
}

// Parse checks and decodes an in-memory document. name labels schema
// positions.
func Parse(data []byte, f Format, name string, opts Options) (*Result, []error) {
	var errs []error

	if opts.Strict {
		errs = append(errs, CheckSchema(data, f, name)...)
		if len(errs) > 0 && opts.Mode == LoadModeFailFast {
			return nil, errs[:1]
		}
	}

	in, err := Decode(data, f, opts.Strict)
	if err != nil {
		return nil, append(errs, err)
	}
	res := &Result{Input: in, Format: f, Size: len(data)}

	for _, verr := range Validate(&res.Input) {
		errs = append(errs, verr)
		if opts.Mode == LoadModeFailFast {
			return res, errs[:1]
		}
	}
	return res, errs
}
