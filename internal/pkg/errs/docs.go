// Package errs provides standardized error types for the route assembly service.
// Every type follows the same pattern: a sentinel error, a struct carrying the
// details, constructors with and without cause, and an Unwrap method returning
// the sentinel so callers classify failures with errors.Is.
//
// The HTTP adapter maps sentinels to status codes:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: 400
//   - ErrConflict: 400
//   - ErrUnauthorized: 401
//   - ErrObjectNotFound: 404
//   - ErrConcurrentModification, ErrIdempotentRequestActive: 409
package errs
