package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound        = NewError(ErrCodeNotFound, "user not found")
	ErrTaskNotFound        = NewError(ErrCodeNotFound, "task not found")
	ErrApplicationNotFound = NewError(ErrCodeNotFound, "application not found")
	ErrSessionNotFound     = NewError(ErrCodeNotFound, "session not found")
	ErrUnauthorized        = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidPayload      = NewError(ErrCodeInvalid, "invalid payload")

	ErrPhoneTaken         = NewError(ErrCodeInvalid, "phone number already registered")
	ErrInvalidRole        = NewError(ErrCodeInvalid, "invalid role, must be SEEKER or WORKER")
	ErrInvalidUrgency     = NewError(ErrCodeInvalid, "invalid urgency level")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "invalid phone or password")

	ErrTaskNotOpen          = NewError(ErrCodeConflict, "task is no longer open")
	ErrTaskNotAccepted      = NewError(ErrCodeConflict, "task must be in ACCEPTED status to complete")
	ErrTaskNotCompleted     = NewError(ErrCodeConflict, "task must be completed before rating")
	ErrSelfApplication      = NewError(ErrCodeInvalid, "you cannot apply for your own task")
	ErrDuplicateApplication = NewError(ErrCodeConflict, "you have already applied for this task")
	ErrApplicationMismatch  = NewError(ErrCodeInvalid, "application does not belong to this task")
	ErrNotTaskOwner         = NewError(ErrCodeForbidden, "only the task owner can perform this action")
	ErrDuplicateRating      = NewError(ErrCodeConflict, "task has already been rated")
	ErrNoAcceptedWorker     = NewError(ErrCodeConflict, "task has no accepted worker")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
