// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy of the delivery lifecycle:
//   - ObjectNotFoundError: a delivery note or carrier is missing or belongs to another tenant
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - InvalidStateError: the operation is not allowed in the current status
//   - UpstreamServiceError: a carrier, inventory or registry call failed
//   - RetryExhaustedError: an UpstreamServiceError raised after all retry attempts failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels; the HTTP adapter
// maps each sentinel to a stable error code.
package errs
