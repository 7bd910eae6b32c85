// Package errs holds the service's error vocabulary.
//
// Every kind pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with
// a struct carrying the details. The struct's Unwrap returns the sentinel, so
// callers classify with errors.Is and never inspect messages:
//
//	if errors.Is(err, errs.ErrAccessDenied) {
//		// 403
//	}
//
// Transport adapters map each sentinel to exactly one response status.
package errs
