// Package errs provides the typed errors shared by every layer of the locker
// engine.
//
// Each error type follows the same pattern:
//   - a sentinel (ErrValueIsRequired, ErrConflict, ...) for errors.Is checks
//   - a struct carrying the details (parameter name, operation, cause)
//   - New... constructors, with and without a cause
//   - Error and Unwrap methods
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) are produced before any store access. ConflictError
// marks a transient race that the caller may retry. StorageError wraps an
// unexpected backend failure; its message is for logs only.
package errs
