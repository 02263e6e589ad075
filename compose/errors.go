package compose

// These errors are construction-time (builder) errors.  They are
// surfaced synchronously to the caller with the offending argument
// attached, analogous to the teacher's core/errors.go family of
// named error types.

import (
	"fmt"
)

// ConstructionError occurs when a constructor is given a bad
// argument: wrong shape, too many arguments, or an attempt to capture
// a native (un-serializable) function.  No constructor checks for
// duplicate action artifact names; hoisting keeps every artifact.
type ConstructionError struct {
	// Kind names the constructor that failed, e.g. "task", "if",
	// "retain".
	Kind string

	// Reason is a short human-readable explanation.
	Reason string

	// Arg is the offending argument, if any.
	Arg interface{}
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("compose: %s: %s (got %#v)", e.Kind, e.Reason, e.Arg)
}

func construction(kind, reason string, arg interface{}) *ConstructionError {
	return &ConstructionError{Kind: kind, Reason: reason, Arg: arg}
}
