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

// Package platform holds the FaaS collaborators spec.md §1 declares
// deliberately out of scope for the core (deploy/update/delete of
// action artifacts, credential discovery, artifact packaging), plus
// the local-dev action-invocation transports that make those artifacts
// runnable without a real cloud platform in front of them.
//
// Nothing in compose, fsm, conductor, or interpreters imports this
// package: the core interprets FSMs and never talks to a platform
// directly.
package platform
