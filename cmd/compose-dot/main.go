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

// compose-dot renders a compiled composition as a Graphviz dot graph,
// grounded on tools/dot.go's digraph generation for core.Spec.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/specfile"
)

func main() {
	var (
		in  = flag.String("in", "", "composition YAML file (required)")
		out = flag.String("out", "", "output .dot file (default: stdout)")
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

	w := os.Stdout
	var wc writeCloser = nopCloser{w}
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatalf("creating %s: %v", *out, err)
		}
		wc = f
	}

	if err := Dot(prog, wc); err != nil {
		fatalf("rendering dot graph: %v", err)
	}
}

type writeCloser interface {
	Write([]byte) (int, error)
	Close() error
}

type nopCloser struct{ w *os.File }

func (n nopCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopCloser) Close() error                { return nil }

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
