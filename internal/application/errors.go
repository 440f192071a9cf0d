package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrInvalidStage         = errors.New("invalid stage, must be 0, 1 or 2")
	ErrStorageNotConfigured = errors.New("object storage not configured")
)

// ValidationError is a caller mistake: bad complaint type, missing detail
// field or malformed status. It is never retried.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// DispatchError wraps a failure to record or deliver a notification.
type DispatchError struct {
	Op  string
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch notification: %s: %v", e.Op, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
