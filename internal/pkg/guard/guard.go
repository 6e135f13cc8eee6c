// Package guard implements the constructor-guard pattern used by the domain
// model. Embedding a ConstructorGuard in a value object lets the object detect
// whether it was built through its constructor or leaked in as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value fails validation, which is the whole
// point: domain objects created by direct struct initialization are rejected
// before they can violate invariants.
//
// Example:
//
//	type GeoPoint struct {
//	    lat, lng float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
//	    // ... validate ...
//	    return GeoPoint{lat: lat, lng: lng, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p GeoPoint) Validate() error {
//	    return p.guard.Validate(ErrGeoPointIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was built through its constructor.
// For a zero-value guard it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
