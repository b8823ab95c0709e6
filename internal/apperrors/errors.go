package apperrors

import (
	"errors"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the stored entity changed since the caller last read it.
var ErrConflict = errors.New("revision conflict")

// Kind classifies a LedgerError. Transport layers map it to a status code.
type Kind string

const (
	KindBadRequest    Kind = "BAD_REQUEST"
	KindRuleViolation Kind = "RULE_VIOLATION"
	KindInvalidData   Kind = "INVALID_DATA"
	KindConflict      Kind = "CONFLICT"
	KindNotFound      Kind = "NOT_FOUND"
	KindDuplicate     Kind = "DUPLICATE"
	KindRateLimited   Kind = "RATE_LIMITED"
	KindSystemError   Kind = "SYSTEM_ERROR"
)

// LedgerError is the single structured error raised by messages and services.
// It carries a kind and a list of human readable messages.
type LedgerError struct {
	Kind     Kind
	Messages []string
	Err      error
}

// New creates a LedgerError with the given kind and messages.
func New(kind Kind, messages ...string) *LedgerError {
	return &LedgerError{Kind: kind, Messages: messages}
}

// Wrap creates a LedgerError that keeps err in the chain.
func Wrap(kind Kind, err error, messages ...string) *LedgerError {
	if len(messages) == 0 && err != nil {
		messages = []string{err.Error()}
	}
	return &LedgerError{Kind: kind, Messages: messages, Err: err}
}

func (e *LedgerError) Error() string {
	if len(e.Messages) == 0 {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + strings.Join(e.Messages, "; ")
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a LedgerError against the package sentinels.
func (e *LedgerError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDuplicate:
		return e.Kind == KindDuplicate
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrValidation:
		return e.Kind == KindBadRequest || e.Kind == KindRuleViolation || e.Kind == KindInvalidData
	}
	return false
}

// KindOf reports the kind of err. Errors that are not LedgerErrors are
// classified by sentinel, falling back to KindSystemError.
func KindOf(err error) Kind {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValidation):
		return KindBadRequest
	}
	return KindSystemError
}

// MessagesOf returns the messages carried by err.
func MessagesOf(err error) []string {
	var le *LedgerError
	if errors.As(err, &le) && len(le.Messages) > 0 {
		return le.Messages
	}
	return []string{err.Error()}
}

// NewAppError wraps a low level failure as a system error.
func NewAppError(msg string, err error) error {
	return Wrap(KindSystemError, err, msg)
}

// NewNotFoundError creates a not-found error with the given message.
func NewNotFoundError(msg string) error {
	return New(KindNotFound, msg)
}

// NewConflictError creates a revision conflict error with the given message.
func NewConflictError(msg string) error {
	return New(KindConflict, msg)
}
