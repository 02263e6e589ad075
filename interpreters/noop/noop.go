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

// Package noop provides an interpreters.Interpreter that always
// reports ReturnedUndefined, leaving params and env untouched. It
// exists for tests that exercise the conductor's state machinery
// without depending on goja.
package noop

import (
	"context"
	"log"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/interpreters"
)

// Interpreter always reports ReturnedUndefined.
type Interpreter struct {
	// Silent, if false, logs a warning on every Exec call.
	Silent bool
}

func init() {
	interpreters.DefaultRegistry["noop"] = NewInterpreter()
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Exec(ctx context.Context, exec *compose.Exec, params interface{}, env map[string]interface{}) (*interpreters.Result, error) {
	if !i.Silent {
		log.Printf("warning: using noop interpreter for exec kind %q", exec.Kind)
	}
	return &interpreters.Result{Outcome: interpreters.ReturnedUndefined, Env: env}, nil
}
