// Package errs provides standardized error types for the food-delivery
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the codebase.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value falls outside its bounds
//   - ObjectNotFoundError: for when an object cannot be found
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method resolving to the sentinel for errors.Is classification
//
// Domain-level conditions (illegal transitions, stale locations, unavailable
// routing) are declared as sentinels in the packages that own them; this
// package carries only the generic validation taxonomy.
package errs
