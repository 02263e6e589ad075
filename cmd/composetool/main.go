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

// composetool loads a composition from YAML, compiles it to an FSM,
// and optionally deploys it, following cmd/spectool's flag-driven
// load/compile/(optional push) flow.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/platform"
	"github.com/Comcast/faas-compose/platform/boltstore"
	"github.com/Comcast/faas-compose/specfile"
)

func main() {
	var (
		in      = flag.String("in", "", "composition YAML file (required)")
		pretty  = flag.Bool("p", false, "pretty-print compiled FSM JSON")
		deploy  = flag.Bool("deploy", false, "deploy the composition's artifacts")
		dbFile  = flag.String("db", "artifacts.db", "bbolt file backing -deploy")
		bucket  = flag.String("bucket", "artifacts", "bbolt bucket name backing -deploy")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		flag.Usage()
		os.Exit(1)
	}

	task, err := specfile.Load(*in)
	if err != nil {
		fatalf("loading %s: %v", *in, err)
	}

	prog, err := fsm.Compile(task)
	if err != nil {
		fatalf("compiling %s: %v", *in, err)
	}

	var bs []byte
	if *pretty {
		bs, err = json.MarshalIndent(prog, "  ", "  ")
	} else {
		bs, err = json.Marshal(prog)
	}
	if err != nil {
		fatalf("rendering compiled FSM: %v", err)
	}
	fmt.Printf("%s\n", bs)

	if *deploy {
		store, err := boltstore.Open(*dbFile, *bucket)
		if err != nil {
			fatalf("opening %s: %v", *dbFile, err)
		}
		defer store.Close()

		n, err := platform.Deploy(store, task)
		if err != nil {
			fatalf("deploying %s: %v", *in, err)
		}
		fmt.Fprintf(os.Stderr, "deployed %d artifact(s)\n", n)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
