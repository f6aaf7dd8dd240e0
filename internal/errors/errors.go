// Package errors is the error facade for infrastructure and domain code:
// matching goes through the standard library, annotation through pkg/errors
// so wrapped errors keep a stack trace.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

// Wrap returns nil when err is nil.
func Wrap(err error, message string) error { return pkgerrors.Wrap(err, message) }

func WithStack(err error) error { return pkgerrors.WithStack(err) }

// StackTrace returns the innermost recorded stack of err, or nil.
func StackTrace(err error) pkgerrors.StackTrace {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}

	var trace pkgerrors.StackTrace
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			trace = st.StackTrace()
		}
		err = stderrors.Unwrap(err)
	}

	return trace
}
