// Package errs provides the typed errors shared by the dispatch service.
//
// Every error type follows the same shape:
//   - a sentinel value (ErrObjectNotFound, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Unwrap returning the sentinel
//
// Repositories return ObjectNotFoundError when a row is missing; domain constructors
// return ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError.
package errs
