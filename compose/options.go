package compose

// Option structs mirror the teacher's plain-struct option records
// (e.g. core.ParamSpec, core.Branches.Modes) rather than a functional-
// options pattern: the teacher never reaches for functional options
// anywhere in the pack, so neither do we.

// IfOptions configures If.
type IfOptions struct {
	// NoSave, when true, means the consequent/alternate branch
	// does not save and restore params across the branch (cf.
	// spec.md §4.2's "(prepended with pop unless nosave)").
	NoSave bool
}

// WhileOptions configures While.
type WhileOptions struct {
	NoSave bool
}

// TryOptions configures Try.  Currently no recognized options.
type TryOptions struct{}

// FinallyOptions configures Finally.  Currently no recognized options.
type FinallyOptions struct{}

// FunctionOptions configures Function.  Currently no recognized
// options.
type FunctionOptions struct{}

// LiteralOptions configures Literal.
type LiteralOptions struct {
	// Doc is markdown documentation for this node; consumed only
	// by package docs.
	Doc string
}

// ActionOptions configures Action.
type ActionOptions struct {
	// Sequence, if given, is a list of action names; this makes
	// Action produce a native-sequence artifact.  Unqualified
	// names (no "/") are auto-namespaced using the namespace of
	// the Action's own name.
	Sequence []string

	// Filename, if given, is read and becomes the artifact's
	// inline code body.
	Filename string

	// Action, if given, becomes the artifact body directly.
	Action interface{}

	// Doc is markdown documentation for this node.
	Doc string
}

// RetainOptions configures Retain.  At most one of Field, Filter, or
// Catch may be set; see Retain's doc comment for the desugaring
// order (filter -> catch -> plain).
type RetainOptions struct {
	Field  string
	Filter interface{}
	Catch  bool
}

func optsCount(field string, filter interface{}, catch bool) int {
	n := 0
	if field != "" {
		n++
	}
	if filter != nil {
		n++
	}
	if catch {
		n++
	}
	return n
}
