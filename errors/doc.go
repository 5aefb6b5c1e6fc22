// Package errors provides the structured error type used across rddkit.
//
// Every failure surfaced by the engine is an *AppError carrying a
// machine-readable ErrorCode, so callers can branch on the kind of failure
// (an empty collection, a bad count, a failing user function) without
// matching on message text:
//
//	if _, err := c.First(); errors.IsCode(err, errors.ErrCodeEmptyCollection) {
//	    // nothing to report
//	}
package errors
