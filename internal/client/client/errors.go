package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

const defaultAuthMessage = "Authentication failed"

// AuthError is a rejected signup or login.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match rejected credentials.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// SyncError is a failed save or load while authenticated.
type SyncError struct {
	Op      string
	Status  int
	Message string
}

func (e *SyncError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

func (e *SyncError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}
