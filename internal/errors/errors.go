// Package errors provides structured error types for the Incordes client.
// These errors carry the failing operation and a category so callers can
// decide whether a failure is fatal, retryable, or something to flash and
// move past.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindDuplicate
	KindNetwork
	KindInvalid
	KindNotFound
	KindConfig
	KindIO
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "authentication failed"
	case KindDuplicate:
		return "already exists"
	case KindNetwork:
		return "network error"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Incordes.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage returns a short message suitable for showing in the UI.
// Structured errors render their remote context; anything else falls back
// to the generic category text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return e.Context
		}
		var inner *Error
		if e.Err != nil && !errors.As(e.Err, &inner) {
			return e.Err.Error()
		}
		return e.Kind.String()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Auth errors

// InvalidCredentials is returned when the auth service rejects a login.
func InvalidCredentials() error {
	return E(Op("auth.Login"), KindAuth, "invalid email or password")
}

// DuplicateAccount is returned when registering with an email that is taken.
func DuplicateAccount(email string) error {
	return E(Op("auth.Register"), KindDuplicate, fmt.Sprintf("an account already exists for %s", email))
}

// Transport wraps a failure to reach a remote service.
func Transport(op Op, err error) error {
	return E(op, KindNetwork, "could not reach the server", err)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}
