package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindConflict
	KindDeadlinePassed
	KindAlreadyGraded
	KindInvalidScore
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindDeadlinePassed:
		return "deadline_passed"
	case KindAlreadyGraded:
		return "already_graded"
	case KindInvalidScore:
		return "invalid_score"
	case KindUnavailable:
		return "unavailable"
	default:
		return "server"
	}
}

// HTTPStatus maps a kind to the status code returned by the API
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindDeadlinePassed, KindAlreadyGraded, KindInvalidScore:
		return 400
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindUnavailable:
		return 503
	default:
		return 500
	}
}

// AppError is a structured error carrying a kind, a machine-readable code and
// a message that is safe to show to the caller.
type AppError struct {
	Kind     Kind
	Code     string
	Message  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

func newError(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// NewValidation reports malformed input
func NewValidation(code, message string) *AppError {
	return newError(KindValidation, code, message)
}

// NewNotFound reports a missing event, team, submission or user
func NewNotFound(code, message string) *AppError {
	return newError(KindNotFound, code, message)
}

// NewForbidden reports a caller without the required membership or role
func NewForbidden(code, message string) *AppError {
	return newError(KindForbidden, code, message)
}

// NewUnauthorized reports missing or invalid credentials
func NewUnauthorized(code, message string) *AppError {
	return newError(KindUnauthorized, code, message)
}

// NewConflict reports a uniqueness violation
func NewConflict(code, message string) *AppError {
	return newError(KindConflict, code, message)
}

// NewDeadlinePassed reports a closed submission window
func NewDeadlinePassed(message string) *AppError {
	return newError(KindDeadlinePassed, CodeDeadlinePassed, message)
}

// NewAlreadyGraded reports an edit attempted after grading
func NewAlreadyGraded(message string) *AppError {
	return newError(KindAlreadyGraded, CodeAlreadyGraded, message)
}

// NewInvalidScore reports a grade score outside the accepted range
func NewInvalidScore(message string) *AppError {
	return newError(KindInvalidScore, CodeInvalidScore, message)
}

// NewUnavailable reports a disabled or unreachable collaborator
func NewUnavailable(code, message string, err error) *AppError {
	e := newError(KindUnavailable, code, message)
	e.Internal = err
	return e
}

// NewServer wraps an unexpected failure. The message is generic; the cause is
// kept in Internal for logging.
func NewServer(code string, err error) *AppError {
	return &AppError{
		Kind:     KindServer,
		Code:     code,
		Message:  "Server Error",
		Internal: err,
	}
}

// KindOf returns the kind of err, or KindServer when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}
