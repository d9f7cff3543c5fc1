package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies operation failures. Every failing public operation
// reports exactly one kind.
type ErrorKind string

const (
	// ErrNone marks a successful result.
	ErrNone ErrorKind = ""
	// ErrProviderUnavailable means the structural detection tooling is
	// missing or misconfigured for the document's content type.
	ErrProviderUnavailable ErrorKind = "provider_unavailable"
	// ErrNotFound means no string or content exists at the given location.
	ErrNotFound ErrorKind = "not_found"
	// ErrInvalidInput means the selection or content is empty or malformed.
	ErrInvalidInput ErrorKind = "invalid_input"
	// ErrPreconditionFailed means the target is not writable or the
	// operation was invoked on the wrong kind of surface or session.
	ErrPreconditionFailed ErrorKind = "precondition_failed"
	// ErrStaleBinding means the origin document changed shape so the
	// recorded span is no longer addressable.
	ErrStaleBinding ErrorKind = "stale_binding"
	// ErrUnexpected wraps any uncaught failure during an operation.
	ErrUnexpected ErrorKind = "unexpected"
)

// OpError is a classified operation failure. It satisfies error so adapters
// and the domain can pass failures up with a kind attached.
type OpError struct {
	Kind        ErrorKind
	Message     string
	Suggestions []string
	Err         error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError builds a classified failure without an underlying cause.
func NewOpError(kind ErrorKind, message string, suggestions ...string) *OpError {
	return &OpError{Kind: kind, Message: message, Suggestions: suggestions}
}

// WrapOpError attaches a kind and message to an underlying error.
func WrapOpError(kind ErrorKind, message string, err error) *OpError {
	return &OpError{Kind: kind, Message: message, Err: err}
}

// Result is the uniform envelope returned by every public engine operation.
// Failures never propagate as panics or bare errors across the engine
// boundary; they are converted into this shape.
type Result[T any] struct {
	Success     bool
	Message     string
	Data        T
	ErrorCode   ErrorKind
	Suggestions []string
}

// Ok builds a successful result carrying data.
func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

// Fail builds a failed result with a classified error code.
func Fail[T any](kind ErrorKind, message string, suggestions ...string) Result[T] {
	return Result[T]{Message: message, ErrorCode: kind, Suggestions: suggestions}
}

// FailErr converts an error into a failed result, honoring an OpError's
// kind and suggestions when present and classifying anything else as
// unexpected.
func FailErr[T any](err error) Result[T] {
	var op *OpError
	if errors.As(err, &op) {
		return Result[T]{Message: op.Error(), ErrorCode: op.Kind, Suggestions: op.Suggestions}
	}

	return Result[T]{Message: err.Error(), ErrorCode: ErrUnexpected}
}
