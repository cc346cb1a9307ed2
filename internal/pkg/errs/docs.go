// Package errs provides the standardized error types used across the
// marketplace service. Each error scenario follows the same pattern: a
// sentinel error variable for classification, a struct type carrying the
// error details, constructors with and without an underlying cause, and
// Error/Unwrap methods so callers can branch with errors.Is instead of
// matching message strings.
//
// The covered scenarios:
//   - ObjectNotFoundError: a referenced object does not exist
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ValueIsNotUniqueError: a value collides under a uniqueness constraint
//   - VersionIsInvalidError: a version value is malformed
//   - ConcurrentModificationError: an optimistic write lost the race and
//     may be retried with a fresh read
package errs
