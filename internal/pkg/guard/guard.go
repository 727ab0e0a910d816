// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries to tell constructor-built values from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is only valid when produced by NewConstructorGuard.
//
// Example:
//
//	type AssembleRouteCommand struct {
//	    courierID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AssembleRouteCommand) Validate() error {
//	    return c.guard.Validate(ErrAssembleRouteCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) for zero-value guards.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
