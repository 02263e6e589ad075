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

// conductorsrv is a minimal HTTP harness for running a compiled
// composition against a mock in-process action platform, so a
// composition can be iterated on locally without a real FaaS
// deployment standing behind its actions. Grounded on cmd/msimple's
// read/compile/run-to-completion flow, reshaped around conductor.Run
// and an HTTP request/response cycle instead of stdin/stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Comcast/faas-compose/conductor"
	"github.com/Comcast/faas-compose/fsm"
	_ "github.com/Comcast/faas-compose/interpreters/goja"
	"github.com/Comcast/faas-compose/specfile"
)

// MockActions answers an action invocation with a canned response,
// the harness's stand-in for the hosting platform actually running
// the named action (spec.md §1's "hosting platform" collaborator).
type MockActions map[string]interface{}

// Invoke returns the canned response for action, merged over params
// so fields params already carries survive an action that only
// patches a few keys. An action with no canned response echoes
// params back unchanged.
func (m MockActions) Invoke(action string, params interface{}) interface{} {
	resp, has := m[action]
	if !has {
		return params
	}
	base, baseIsMap := params.(map[string]interface{})
	patch, patchIsMap := resp.(map[string]interface{})
	if !baseIsMap || !patchIsMap {
		return resp
	}
	merged := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

func main() {
	var (
		specFile    = flag.String("s", "", "composition YAML file (required)")
		actionsFile = flag.String("actions", "", "JSON file of {action: cannedResponse} mock responses")
		addr        = flag.String("addr", ":8080", "listen address")
	)
	flag.Parse()

	if *specFile == "" {
		fmt.Fprintln(os.Stderr, "error: -s is required")
		flag.Usage()
		os.Exit(1)
	}

	task, err := specfile.Load(*specFile)
	if err != nil {
		log.Fatalf("loading %s: %v", *specFile, err)
	}
	prog, err := fsm.Compile(task)
	if err != nil {
		log.Fatalf("compiling %s: %v", *specFile, err)
	}

	mocks := MockActions{}
	if *actionsFile != "" {
		bs, err := os.ReadFile(*actionsFile)
		if err != nil {
			log.Fatalf("reading %s: %v", *actionsFile, err)
		}
		if err := json.Unmarshal(bs, &mocks); err != nil {
			log.Fatalf("parsing %s: %v", *actionsFile, err)
		}
	}

	http.HandleFunc("/invoke", func(w http.ResponseWriter, r *http.Request) {
		var params interface{}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		outcome, err := runToCompletion(r.Context(), prog, params, mocks)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(outcome.Encode())
	})

	log.Printf("conductorsrv listening on %s, serving %s", *addr, *specFile)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

// runToCompletion drives Run, feeding each Continuation outcome's
// action back through mocks and resuming with the result, until Run
// returns a terminal (Success/Error) or BadRequest outcome.
func runToCompletion(ctx context.Context, prog *fsm.FSM, params interface{}, mocks MockActions) (*conductor.Outcome, error) {
	for {
		outcome, err := conductor.Run(ctx, prog, params, nil)
		if err != nil {
			return nil, err
		}
		if outcome.Kind != conductor.Continuation {
			return outcome, nil
		}

		result := mocks.Invoke(outcome.Action, outcome.Params)
		resumed, is := result.(map[string]interface{})
		if !is {
			resumed = map[string]interface{}{"value": result}
		}

		// The action's continuation travels back to the platform
		// and is handed back to us as JSON, so round-trip the
		// resume token through JSON here too rather than passing
		// Go structs straight through.
		resumeJSON, err := json.Marshal(outcome.Resume)
		if err != nil {
			return nil, err
		}
		var resumeGeneric interface{}
		if err := json.Unmarshal(resumeJSON, &resumeGeneric); err != nil {
			return nil, err
		}
		resumed["$resume"] = resumeGeneric
		params = resumed
	}
}
