package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures the portal surfaces to its views.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthRequired  ErrorKind = "auth_required"
	KindRequestFailed ErrorKind = "request_failed"
	KindNetwork       ErrorKind = "network"
)

// Error is the typed failure returned by gateway operations and by client-side
// checks made before a request is sent.
type Error struct {
	Kind    ErrorKind
	Op      string // gateway operation, e.g. "create appointment"
	Status  int    // upstream HTTP status, only set for KindRequestFailed
	Message string // human-readable, safe to show to the user
	Err     error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind so errors.Is(err, ErrNetwork) works on any
// network failure regardless of operation or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Kind == e.Kind
}

var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuthRequired  = &Error{Kind: KindAuthRequired}
	ErrRequestFailed = &Error{Kind: KindRequestFailed}
	ErrNetwork       = &Error{Kind: KindNetwork}
)

var (
	ErrInvalidTransition    = errors.New("invalid booking step transition")
	ErrFlowNotFound         = errors.New("booking flow not found")
	ErrSubmissionInProgress = errors.New("booking submission already in progress")
	ErrForbidden            = errors.New("access forbidden")
)

// NewValidationError builds a client-side validation failure.
func NewValidationError(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

// NewAuthRequiredError is returned when an operation needs a token and none is stored.
func NewAuthRequiredError(op string) *Error {
	return &Error{Kind: KindAuthRequired, Op: op, Message: "No hay token de autenticación. Por favor, inicia sesión nuevamente."}
}

// UserMessage extracts the message suitable for display. Unknown errors yield fallback.
func UserMessage(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
