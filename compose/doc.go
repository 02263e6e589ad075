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

// Package compose provides the AST builder for the composition
// engine: constructors for sequence, conditional, loop, try/catch,
// finally, lexical binding, and retain nodes whose leaves are either
// remote action invocations or inline user code.
//
// A Task is a normalized, deep-copyable AST node.  Building a Task
// never executes anything; construction errors (bad arity, bad
// argument shape, an attempt to capture a native function) are
// reported synchronously as a *ConstructionError.
//
// Package fsm compiles a Task into a flat FSM.  Package conductor
// interprets that FSM.
package compose
