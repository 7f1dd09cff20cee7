package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrForbidden is returned when the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// NotFoundError is returned when a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InactiveResourceError is returned when an operation targets a resource that
// exists but has been deactivated.
type InactiveResourceError struct {
	Resource string
	ID       string
}

func (e *InactiveResourceError) Error() string {
	return fmt.Sprintf("%s %s is not active", e.Resource, e.ID)
}

// InvalidRangeError is returned when a time range is constructed with
// start >= end.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range: start %s must be before end %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// OutOfRangeError is returned when a session's time range falls outside its
// event's time window.
type OutOfRangeError struct {
	Candidate TimeRange
	Container TimeRange
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("session schedule %s must be within the event's date range %s", e.Candidate, e.Container)
}

// SessionConflict identifies one session that collides with a candidate range.
type SessionConflict struct {
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	Range     TimeRange `json:"range"`
}

// ScheduleConflictError is returned when a candidate session overlaps one or
// more active sessions of the same event. Conflicts lists every collision,
// not just the first.
type ScheduleConflictError struct {
	Conflicts []SessionConflict
}

func (e *ScheduleConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = fmt.Sprintf("'%s' (%s)", c.Title, c.Range)
	}
	return "schedule conflict with existing sessions: " + strings.Join(parts, ", ")
}

// InvalidValueError is returned when a supplied field value violates a
// business rule.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateRegistrationError is returned when a user attempts to register for
// an event they are already registered for.
type DuplicateRegistrationError struct {
	EventID string
	UserID  string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("user %s is already registered for event %s", e.UserID, e.EventID)
}

// CapacityExceededError is returned when a registration requests more
// participants than the event has room for.
type CapacityExceededError struct {
	Available int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("not enough capacity: available %d, requested %d", e.Available, e.Requested)
}
