// Package errors provides the engine's error taxonomy: a small Kind-tagged
// wrapper type plus sentinels so callers can use errors.Is without caring
// about the wrapping.
package errors

import (
	"errors"
	"fmt"
)

// Standard error functions, re-exported for callers that only need the
// taxonomy and don't want a second import of the standard errors package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Kind distinguishes the three ways an engine call can fail.
type Kind string

const (
	KindPoolExhausted Kind = "pool_exhausted"
	KindUnknownOrder  Kind = "unknown_order"
	KindInvalidOrder  Kind = "invalid_order"
)

// Error wraps a Kind and an optional human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports equality by Kind, so errors.Is(err, ErrUnknownOrder) works
// regardless of the Reason text attached at the call site.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newKind(kind Kind) *Error { return &Error{Kind: kind} }

// Sentinels usable with errors.Is.
var (
	ErrPoolExhausted = newKind(KindPoolExhausted)
	ErrUnknownOrder  = newKind(KindUnknownOrder)
	ErrInvalidOrder  = newKind(KindInvalidOrder)
)

// PoolExhausted builds a PoolExhausted error with a specific reason.
func PoolExhausted(reason string) *Error {
	return &Error{Kind: KindPoolExhausted, Reason: reason, cause: ErrPoolExhausted}
}

// UnknownOrder builds an UnknownOrder error referencing the offending id.
func UnknownOrder(id uint64) *Error {
	return &Error{Kind: KindUnknownOrder, Reason: fmt.Sprintf("order %d is not live", id), cause: ErrUnknownOrder}
}

// InvalidOrder builds an InvalidOrder error with a specific reason.
func InvalidOrder(reason string) *Error {
	return &Error{Kind: KindInvalidOrder, Reason: reason, cause: ErrInvalidOrder}
}
