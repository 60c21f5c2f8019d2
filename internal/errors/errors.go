// Package errors provides structured error types for the formatbench tool.
// All errors include a kind, code, and message so failures can be recorded
// in benchmark results and rendered as gaps rather than fabricated zeros.
package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrorKind classifies errors by benchmark concern.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "CONFIGURATION"
	KindGeneration    ErrorKind = "GENERATION"
	KindFormatWrite   ErrorKind = "FORMAT_WRITE"
	KindFormatRead    ErrorKind = "FORMAT_READ"
	KindResource      ErrorKind = "RESOURCE_EXHAUSTION"
)

// Error codes for each kind.
const (
	// Configuration codes
	CodeInvalidSize      = "INVALID_SIZE"
	CodeInvalidBatchSize = "INVALID_BATCH_SIZE"
	CodeInvalidRuns      = "INVALID_RUNS"
	CodeUnknownFormat    = "UNKNOWN_FORMAT"
	CodeUnknownField     = "UNKNOWN_FIELD"
	CodeInvalidPath      = "INVALID_PATH"

	// Generation codes
	CodeEmptyVocabulary = "EMPTY_VOCABULARY"
	CodeInvalidWindow   = "INVALID_DATE_WINDOW"

	// Write codes
	CodeOpenFailed   = "OPEN_FAILED"
	CodeEncodeFailed = "ENCODE_FAILED"
	CodeCloseFailed  = "CLOSE_FAILED"

	// Read codes
	CodeFileNotFound = "FILE_NOT_FOUND"
	CodeCorruptFrame = "CORRUPT_FRAME"
	CodeDecodeFailed = "DECODE_FAILED"

	// Resource codes
	CodeDiskFull    = "DISK_FULL"
	CodeOutOfMemory = "OUT_OF_MEMORY"
)

// BenchError is the structured error type used throughout the tool.
type BenchError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Cause   error
}

// Error returns a formatted error string.
func (e *BenchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *BenchError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's kind and code.
func (e *BenchError) Is(target error) bool {
	var t *BenchError
	if errors.As(target, &t) {
		return e.Kind == t.Kind && e.Code == t.Code
	}
	return false
}

// New creates a new BenchError.
func New(kind ErrorKind, code, message string) *BenchError {
	return &BenchError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new BenchError wrapping an existing error.
func Wrap(kind ErrorKind, code, message string, cause error) *BenchError {
	return &BenchError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsFatal reports whether an error (or its chain) must abort the whole run
// rather than being isolated to one format. Configuration and generation
// errors fail fast before any phase; process-wide memory exhaustion
// propagates to the caller.
func IsFatal(err error) bool {
	var be *BenchError
	if !errors.As(err, &be) {
		return false
	}
	switch {
	case be.Kind == KindConfiguration, be.Kind == KindGeneration:
		return true
	case be.Kind == KindResource && be.Code == CodeOutOfMemory:
		return true
	default:
		return false
	}
}

// GetKind extracts the error kind from an error chain.
// Returns empty string if the error is not a BenchError.
func GetKind(err error) ErrorKind {
	var be *BenchError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not a BenchError.
func GetCode(err error) string {
	var be *BenchError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Convenience constructors for common errors.

func NewConfigurationError(code, message string) *BenchError {
	return New(KindConfiguration, code, message)
}

func NewGenerationError(code, message string) *BenchError {
	return New(KindGeneration, code, message)
}

// NewWriteError wraps a write-path failure, promoting exhausted-disk causes
// to the resource kind so they surface distinctly in results.
func NewWriteError(code, message string, cause error) *BenchError {
	if cause != nil && errors.Is(cause, syscall.ENOSPC) {
		return Wrap(KindResource, CodeDiskFull, message, cause)
	}
	return Wrap(KindFormatWrite, code, message, cause)
}

func NewReadError(code, message string, cause error) *BenchError {
	return Wrap(KindFormatRead, code, message, cause)
}

func NewResourceError(code, message string, cause error) *BenchError {
	return Wrap(KindResource, code, message, cause)
}
