package service

import "fmt"

// NotFoundError reports that a referenced entity does not exist.
// Entity names which lookup failed (e.g. "class", "discipline", "teacher").
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// ConflictError reports that an operation would violate a uniqueness
// invariant. Reason is a human-readable description surfaced to the caller.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}
