package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by the core wraps exactly one of these.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
	ErrUpstreamAuth  = errors.New("upstream auth error")
	ErrUpstreamQuota = errors.New("upstream quota error")
	ErrUpstreamParse = errors.New("upstream parse error")
	ErrInternal      = errors.New("internal error")
)

var (
	ErrTaskNotFound          = fmt.Errorf("task %w", ErrNotFound)
	ErrProviderNotConfigured = &Error{Kind: ErrConfiguration, Message: "ai provider credential not configured"}
)

var kinds = []error{
	ErrValidation,
	ErrNotFound,
	ErrConfiguration,
	ErrUpstreamAuth,
	ErrUpstreamQuota,
	ErrUpstreamParse,
	ErrInternal,
}

// Error is a classified failure. Message is safe for logs; Err keeps the cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NewInternalError(message string, err error) error {
	return &Error{Kind: ErrInternal, Message: message, Err: err}
}

// ParseError reports a provider response that could not be turned into the
// expected shape. Index is the offending batch element, or -1 when the body
// as a whole was unusable.
type ParseError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "invalid provider response"
	if e.Index >= 0 {
		msg = fmt.Sprintf("invalid task at index %d", e.Index)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstreamParse}
	}
	return []error{ErrUpstreamParse, e.Err}
}

// KindOf returns the error kind carried by err, defaulting to ErrInternal.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}
