// Package guard enforces the use of constructors for domain objects.
//
// A ConstructorGuard embedded in a struct distinguishes values created through
// a constructor from zero values. Constructors set the guard via
// NewConstructorGuard; Validate then reports an error for any zero value that
// bypassed the constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the zero-value
// check fails and the caller did not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value
// fails Validate; only NewConstructorGuard produces a passing guard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard that passes Validate.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil if the guard was created via NewConstructorGuard.
// For a zero-value guard it returns notConstructedErr, or
// ErrDefaultConstructorGuard when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructedErr
}
