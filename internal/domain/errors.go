package domain

import (
	"errors"
	"fmt"
)

// Caller-visible error categories.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInternal         = errors.New("internal error")
)

// Resource-level causes. Each wraps one of the categories above.
var (
	ErrTemplateNotFound = fmt.Errorf("trip template not found: %w", ErrNotFound)
	ErrEstimateNotFound = fmt.Errorf("budget estimate not found: %w", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("post not found: %w", ErrNotFound)
	ErrTeamNotFound     = fmt.Errorf("team not found: %w", ErrNotFound)
	ErrNotTemplateUser  = fmt.Errorf("caller is not an authorized template user: %w", ErrPermissionDenied)
	ErrNotTeamMember    = fmt.Errorf("caller is not a team member: %w", ErrPermissionDenied)
	ErrNotTeamAdmin     = fmt.Errorf("caller is not a team admin: %w", ErrPermissionDenied)
	ErrLastAdmin        = fmt.Errorf("last admin cannot leave a team with other members: %w", ErrInvalidArgument)
	ErrTargetNotMember  = fmt.Errorf("target user is not a team member: %w", ErrInvalidArgument)
)

// ErrorCode is the caller-visible code of a failed call.
type ErrorCode string

const (
	CodeUnauthenticated  ErrorCode = "unauthenticated"
	CodeInvalidArgument  ErrorCode = "invalid-argument"
	CodeNotFound         ErrorCode = "not-found"
	CodePermissionDenied ErrorCode = "permission-denied"
	CodeInternal         ErrorCode = "internal"
)

var codeSentinels = map[ErrorCode]error{
	CodeUnauthenticated:  ErrUnauthenticated,
	CodeInvalidArgument:  ErrInvalidArgument,
	CodeNotFound:         ErrNotFound,
	CodePermissionDenied: ErrPermissionDenied,
	CodeInternal:         ErrInternal,
}

// CallError is the single failure type returned by the callable endpoints.
// Message is safe to show to the caller; Cause is for server-side logs only.
type CallError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes both the category sentinel and the underlying cause.
func (e *CallError) Unwrap() []error {
	errs := []error{codeSentinels[e.Code]}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCallError builds a CallError.
func NewCallError(code ErrorCode, msg string, cause error) *CallError {
	return &CallError{Code: code, Message: msg, Cause: cause}
}
