// Package errors provides structured error types for the linker.
//
// Errors carry a Phase (where assembly was when the error occurred) and a
// Kind (what went wrong), so callers can match on either without string
// comparison:
//
//	if errors.Is(err, &linkerrors.Error{Kind: linkerrors.KindInternal}) {
//	    // linker defect, not bad input
//	}
//
// Internal-consistency violations are created with Internal and raised by
// panic inside the linker core; everything else is an ordinary returned
// error.
package errors
