package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("internal consistency failure")
)

// ValidationError rejects a single write. Fields maps the offending field to
// the reason it was rejected.
type ValidationError struct {
	Entity string
	Fields map[string]string
}

func NewValidationError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Has reports whether the given field was rejected.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// ConflictError is returned when a write collides with a uniqueness
// constraint. It is retriable with different input.
type ConflictError struct {
	Entity string
	Fields []string
	Reason string
}

func (e *ConflictError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", e.Entity, strings.Join(e.Fields, ", "), e.Reason)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConsistencyAlarm signals that committed bookings exceed a flight's
// capacity. It is never shown to clients verbatim.
type ConsistencyAlarm struct {
	FlightID int64
	Capacity int
	Issued   int
}

func (e *ConsistencyAlarm) Error() string {
	return fmt.Sprintf("flight %d overbooked: capacity %d, tickets issued %d", e.FlightID, e.Capacity, e.Issued)
}

func (e *ConsistencyAlarm) Is(target error) bool { return target == ErrConsistency }

// TicketSpecError points at the ticket spec of an order request that failed.
type TicketSpecError struct {
	Index int
	Err   error
}

func (e *TicketSpecError) Error() string {
	return fmt.Sprintf("tickets[%d]: %v", e.Index, e.Err)
}

func (e *TicketSpecError) Unwrap() error { return e.Err }
