// Package guard detects value objects, commands and queries that bypassed
// their constructor and are therefore zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a struct and flipped on only by its constructor.
//
// Example:
//
//	type CreateOrderCommand struct {
//	    customerID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c CreateOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
