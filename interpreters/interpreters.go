/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package interpreters defines the contract a "function" exec must
// satisfy (spec.md §4.4), plus a name->Interpreter registry,
// mirroring the teacher's core.Interpreter interface and its
// interpreters registry.
package interpreters

import (
	"context"
	"errors"

	"github.com/Comcast/faas-compose/compose"
)

// Outcome classifies how a function evaluation completed.
type Outcome int

const (
	// OK means the code returned an ordinary, defined value;
	// Result.Value holds it.
	OK Outcome = iota

	// ReturnedUndefined means the code returned undefined; the
	// conductor keeps the current params unchanged.
	ReturnedUndefined

	// ReturnedFunction means the code returned something callable;
	// the conductor substitutes a fixed error (spec.md §4.3).
	ReturnedFunction

	// Threw means the code raised an exception; the conductor
	// substitutes a fixed error (spec.md §4.3). Message carries the
	// underlying exception text for tracing only.
	Threw
)

// Result is what an Interpreter.Exec returns.
type Result struct {
	Outcome Outcome
	Value   interface{}

	// Env is the lexical environment after evaluation: every name
	// present in the env given to Exec, holding whatever value it
	// has after the code ran. The conductor writes each of these
	// back to the topmost frame that declared it (spec.md §4.4).
	Env map[string]interface{}

	// Message carries exception text when Outcome == Threw, for
	// tracing; the conductor never surfaces it verbatim.
	Message string
}

// Interpreter evaluates a compose.Exec's code against the current
// params and lexical environment.
type Interpreter interface {
	Exec(ctx context.Context, exec *compose.Exec, params interface{}, env map[string]interface{}) (*Result, error)
}

// ErrInterpreterNotFound occurs when a function state's Exec.Kind
// names an interpreter absent from the registry.
var ErrInterpreterNotFound = errors.New("interpreter not found")

// Registry maps an Exec.Kind to the Interpreter that handles it.
type Registry map[string]Interpreter

// DefaultRegistry is populated by interpreter packages' init
// functions (cf. interpreters/goja's registration under "goja:default").
var DefaultRegistry = make(Registry)

// Lookup finds the Interpreter for kind, defaulting to
// DefaultRegistry when reg is nil.
func Lookup(reg Registry, kind string) (Interpreter, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	i, have := reg[kind]
	if !have {
		return nil, ErrInterpreterNotFound
	}
	return i, nil
}
