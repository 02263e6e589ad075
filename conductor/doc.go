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

// Package conductor implements the resumable interpreter over a
// compiled fsm.FSM: a single-threaded (state, stack, params) machine
// that runs until it either terminates or must suspend for an action
// invocation, at which point it returns a continuation the hosting
// platform round-trips back on the next invocation.
//
// There is exactly one suspension point, the action state; there is
// no scheduling, no persistence beyond the continuation, and no
// timeout handling here -- the platform owns all of that.
package conductor
