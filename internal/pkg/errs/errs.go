package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound          = errors.New("object not found")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrValueIsOutOfRange       = errors.New("value is out of range")
	ErrValueIsRequired         = errors.New("value is required")
	ErrConflict                = errors.New("conflict")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrConcurrentModification  = errors.New("concurrent modification")
	ErrIdempotentRequestActive = errors.New("request with this idempotency key is in progress")
)

// sanitize flattens user-provided values so they cannot break single-line log output.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a repository has no record for the requested identifier.
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
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError signals malformed input for a named parameter.
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

// ValueIsOutOfRangeError signals a value outside the [Min, Max] interval.
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
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError signals a missing mandatory parameter.
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

// ConflictError is returned when an operation is not allowed in the current state of an entity.
type ConflictError struct {
	Entity string
	Reason string
}

func NewConflictError(entity, reason string) *ConflictError {
	return &ConflictError{Entity: entity, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError is returned when a credential is missing or cannot be verified.
type UnauthorizedError struct {
	Reason string
	Cause  error
}

func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func NewUnauthorizedErrorWithCause(reason string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthorized, e.Reason), e.Cause)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ConcurrentModificationError is returned when an optimistic version check fails on update.
type ConcurrentModificationError struct {
	Entity string
	ID     any
}

func NewConcurrentModificationError(entity string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{Entity: entity, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.Entity, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
