package engine

import (
	"errors"
	"fmt"
)

// RuntimeError is a boundary failure that aborts a run.
//
// Business failures (wrong page, not enough tokens, unknown movie) are
// never RuntimeErrors; they become error records in the output.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Seq is the logical position of the action being executed, or 0.
	Seq int64

	// Err is the underlying cause, if any.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeMissingCollection indicates bootstrap or dispatch found a
	// required collection absent from the store.
	ErrCodeMissingCollection RuntimeErrorCode = "MISSING_COLLECTION"

	// ErrCodeRecorder indicates the journal recorder failed.
	ErrCodeRecorder RuntimeErrorCode = "RECORDER_FAILED"

	// ErrCodeInvalidInput indicates the input document cannot be replayed.
	ErrCodeInvalidInput RuntimeErrorCode = "INVALID_INPUT"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Seq != 0 {
		msg = fmt.Sprintf("%s (seq=%d)", msg, e.Seq)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func isCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsMissingCollection reports whether err is a missing collection error.
// Uses errors.As to handle wrapped errors.
func IsMissingCollection(err error) bool {
	return isCode(err, ErrCodeMissingCollection)
}

// IsRecorderError reports whether err came from the journal recorder.
func IsRecorderError(err error) bool {
	return isCode(err, ErrCodeRecorder)
}

// IsInvalidInput reports whether err rejects the input document.
func IsInvalidInput(err error) bool {
	return isCode(err, ErrCodeInvalidInput)
}

// NewMissingCollectionError wraps a store lookup failure.
func NewMissingCollectionError(name string, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMissingCollection,
		Message: fmt.Sprintf("collection %q is required", name),
		Err:     err,
	}
}

// NewRecorderError wraps a recorder failure at seq.
func NewRecorderError(seq int64, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeRecorder,
		Message: "failed to record action",
		Seq:     seq,
		Err:     err,
	}
}

// NewInvalidInputError rejects an input document.
func NewInvalidInputError(format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}
