package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidState      = errors.New("invalid state")
	ErrUpstreamService   = errors.New("upstream service error")
	ErrRetryExhausted    = errors.New("retry exhausted")
)

// sanitize keeps user supplied values on a single line.
func sanitize(input string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(input)
}

// ObjectNotFoundError reports a missing entity. A tenant mismatch is reported the
// same way so that foreign records stay invisible.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(fmt.Sprintf("%s", e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(fmt.Sprintf("%s", e.ID)))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(fmt.Sprintf("%v", e.Value)), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError is returned when an operation is not allowed for the
// current status of an entity.
type InvalidStateError struct {
	Entity string
	State  string
	Reason string
}

func NewInvalidStateError(entity, state, reason string) *InvalidStateError {
	return &InvalidStateError{
		Entity: entity,
		State:  state,
		Reason: reason,
	}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s in status %s: %s", ErrInvalidState, e.Entity, e.State, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// UpstreamServiceError wraps a failed call to a carrier, inventory or registry API.
type UpstreamServiceError struct {
	Service   string
	Operation string
	Cause     error
}

func NewUpstreamServiceError(service, operation string, cause error) *UpstreamServiceError {
	return &UpstreamServiceError{
		Service:   service,
		Operation: operation,
		Cause:     cause,
	}
}

func (e *UpstreamServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrUpstreamService, e.Service, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrUpstreamService, e.Service, e.Operation)
}

func (e *UpstreamServiceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstreamService}
	}
	return []error{ErrUpstreamService, e.Cause}
}

// RetryExhaustedError is an UpstreamServiceError raised after every attempt failed.
// Cause holds the error of the final attempt.
type RetryExhaustedError struct {
	Attempts int
	Cause    error
}

func NewRetryExhaustedError(attempts int, cause error) *RetryExhaustedError {
	return &RetryExhaustedError{
		Attempts: attempts,
		Cause:    cause,
	}
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrRetryExhausted, e.Attempts, e.Cause)
}

func (e *RetryExhaustedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrRetryExhausted, ErrUpstreamService}
	}
	return []error{ErrRetryExhausted, ErrUpstreamService, e.Cause}
}

// IsValidation reports whether err belongs to the input validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange)
}
