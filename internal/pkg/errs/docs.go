// Package errs provides the error taxonomy shared by every layer of the fulfillment service.
//
// Each kind has a sentinel that callers match with errors.Is and a struct type that
// carries the identifying context (parameter name, object ID, cause):
//   - ObjectNotFoundError (ErrObjectNotFound): customer, product or order is absent
//   - ValueIsInvalidError, ValueIsRequiredError, ValueIsOutOfRangeError: validation failures
//   - ConflictError (ErrConflict): the request collides with current state, e.g. not enough stock
//   - TransientError (ErrTransient): lock, timeout or commit failure, safe to retry the whole operation
//
// Anything that matches none of the sentinels is treated as an internal failure by the adapters.
package errs
