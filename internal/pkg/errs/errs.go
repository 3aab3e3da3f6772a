package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrDuplicateResource   = errors.New("duplicate resource")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
	}
	return withCause(
		fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value lies outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates a malformed or unexpected aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidTransitionError indicates an illegal state change for an order or
// inventory unit. Entity names the state machine, From/To name the states.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
	Cause  error
}

func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(entity, from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s %s -> %s", ErrInvalidTransition, e.Entity, e.From, e.To),
		e.Cause,
	)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Code returns a stable machine-readable code for API clients.
func (e *InvalidTransitionError) Code() string {
	return "INVALID_TRANSITION"
}

// DuplicateResourceError indicates a uniqueness violation: duplicate order
// number, inventory code, or a redundant scan that would not change state.
type DuplicateResourceError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewDuplicateResourceError(paramName string, value any) *DuplicateResourceError {
	return &DuplicateResourceError{ParamName: paramName, Value: value}
}

func NewDuplicateResourceErrorWithCause(paramName string, value any, cause error) *DuplicateResourceError {
	return &DuplicateResourceError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *DuplicateResourceError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s", ErrDuplicateResource, e.ParamName, sanitize(e.Value)),
		e.Cause,
	)
}

func (e *DuplicateResourceError) Unwrap() error {
	return ErrDuplicateResource
}

// Code returns a stable machine-readable code for API clients.
func (e *DuplicateResourceError) Code() string {
	return "DUPLICATE_RESOURCE"
}

// CapacityExceededError indicates that accepting a unit would push a warehouse
// past its cubic-meter capacity bound.
type CapacityExceededError struct {
	Warehouse    string
	CapacityCBM  float64
	OccupiedCBM  float64
	RequestedCBM float64
}

func NewCapacityExceededError(warehouse string, capacityCBM, occupiedCBM, requestedCBM float64) *CapacityExceededError {
	return &CapacityExceededError{
		Warehouse:    warehouse,
		CapacityCBM:  capacityCBM,
		OccupiedCBM:  occupiedCBM,
		RequestedCBM: requestedCBM,
	}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: warehouse %s holds %.6f of %.6f m3, cannot accept %.6f m3",
		ErrCapacityExceeded, e.Warehouse, e.OccupiedCBM, e.CapacityCBM, e.RequestedCBM)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// Code returns a stable machine-readable code for API clients.
func (e *CapacityExceededError) Code() string {
	return "CAPACITY_EXCEEDED"
}

// ConcurrencyConflictError indicates a lost update detected by an optimistic
// version check on a concurrent mutation.
type ConcurrencyConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConcurrencyConflictError(paramName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id}
}

func NewConcurrencyConflictErrorWithCause(paramName string, id any, cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s", ErrConcurrencyConflict, e.ParamName, sanitize(e.ID)),
		e.Cause,
	)
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// Code returns a stable machine-readable code for API clients.
func (e *ConcurrencyConflictError) Code() string {
	return "CONCURRENCY_CONFLICT"
}
