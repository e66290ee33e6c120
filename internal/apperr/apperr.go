package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping (HTTP status, UI copy).
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUpstream
)

// Error carries a kind alongside the message so callers can branch on the
// failure class without string matching.
type Error struct {
	Kind    Kind
	Message string
	Service string // upstream service name, set for KindUpstream
	Err     error
}

func (e *Error) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports invalid caller input. No retry will help.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream reports a third-party or network failure, possibly transient.
func Upstream(service, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Service: service, Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsUpstream(err error) bool   { return KindOf(err) == KindUpstream }
