// Package fsm compiles a compose.Task into a flat, zero-indexed
// finite-state machine with numeric jump targets, per spec.md §4.2.
package fsm

import "github.com/Comcast/faas-compose/compose"

// Type tags an FSM State.
type Type string

const (
	Pass     Type = "pass"
	Action   Type = "action"
	Function Type = "function"
	Literal  Type = "literal"
	Choice   Type = "choice"
	Push     Type = "push"
	Pop      Type = "pop"
	Let      Type = "let"
	Exit     Type = "exit"
	Try      Type = "try"
)

// State is one flat FSM state.  Next/Then/Else/Catch are signed
// offsets relative to the state's own index; a nil Next encodes
// program completion.
type State struct {
	Type Type `json:"type" yaml:",omitempty"`

	// Next is the default successor offset.  Absent (nil) on a
	// terminal state.
	Next *int `json:"next,omitempty" yaml:",omitempty"`

	// Action
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Function
	Exec *compose.Exec `json:"exec,omitempty" yaml:",omitempty"`

	// Literal
	Value interface{} `json:"value,omitempty" yaml:",omitempty"`

	// Choice
	Then int `json:"then,omitempty" yaml:",omitempty"`
	Else int `json:"else,omitempty" yaml:",omitempty"`

	// Push
	Field string `json:"field,omitempty" yaml:",omitempty"`

	// Pop
	Collect bool `json:"collect,omitempty" yaml:",omitempty"`

	// Let
	Decls map[string]interface{} `json:"let,omitempty" yaml:",omitempty"`

	// Try
	Catch int `json:"catch,omitempty" yaml:",omitempty"`
}

// FSM is the compiled, ordered, zero-indexed state array, embedded as
// data inside a deployable action artifact (cf. spec.md §6.1).
type FSM struct {
	States []State `json:"states" yaml:",omitempty"`
}

func (f *FSM) Len() int { return len(f.States) }
