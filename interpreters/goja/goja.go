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

// Package goja implements interpreters.Interpreter using Goja, a Go
// implementation of ECMAScript 5.1+. See https://github.com/dop251/goja.
//
// A function state's code is an arrow-function (or function)
// expression of one argument, the current params. Exec compiles and
// calls it, classifying the outcome per spec.md §4.3/§4.4.
package goja

import (
	"context"
	"fmt"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/interpreters"

	"github.com/dop251/goja"
)

func init() {
	interpreters.DefaultRegistry["goja:default"] = NewInterpreter()
}

// Interpreter evaluates compose.Exec code strings with Goja.
type Interpreter struct{}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Exec compiles exec.Code, expecting it to evaluate to a callable of
// one argument, and invokes that callable with params. The
// environment's names are exposed as Goja globals before the call and
// read back afterward, so the conductor can write mutations back to
// the declaring `let` frame.
func (i *Interpreter) Exec(ctx context.Context, exec *compose.Exec, params interface{}, env map[string]interface{}) (*interpreters.Result, error) {
	vm := goja.New()

	for name, value := range env {
		if err := vm.Set(name, value); err != nil {
			return nil, fmt.Errorf("goja: setting env var %q: %w", name, err)
		}
	}

	fnValue, err := vm.RunString(exec.Code)
	if err != nil {
		return &interpreters.Result{Outcome: interpreters.Threw, Message: err.Error(), Env: readEnv(vm, env)}, nil
	}

	fn, callable := goja.AssertFunction(fnValue)
	if !callable {
		return &interpreters.Result{Outcome: interpreters.Threw, Message: "function code did not evaluate to a callable", Env: readEnv(vm, env)}, nil
	}

	result, err := fn(goja.Undefined(), vm.ToValue(params))
	if err != nil {
		return &interpreters.Result{Outcome: interpreters.Threw, Message: err.Error(), Env: readEnv(vm, env)}, nil
	}

	out := &interpreters.Result{Env: readEnv(vm, env)}
	switch {
	case goja.IsUndefined(result):
		out.Outcome = interpreters.ReturnedUndefined
	default:
		if _, callable := goja.AssertFunction(result); callable {
			out.Outcome = interpreters.ReturnedFunction
			break
		}
		out.Outcome = interpreters.OK
		out.Value = result.Export()
	}
	return out, nil
}

func readEnv(vm *goja.Runtime, env map[string]interface{}) map[string]interface{} {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(env))
	for name := range env {
		out[name] = vm.Get(name).Export()
	}
	return out
}
