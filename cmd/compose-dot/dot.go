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

package main

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Comcast/faas-compose/fsm"
)

// Dot writes a Graphviz dot graph of prog, one node per flat FSM
// state, labeled with its type and a detail line (the action name,
// the exec code, or a YAML dump of a literal value or let decls),
// grounded on tools/dot.go's
// digraph-G/record-node generation idiom.
func Dot(prog *fsm.FSM, w io.WriteCloser) error {
	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "12"]
`)

	for i, s := range prog.States {
		label := fmt.Sprintf("%d: %s", i, s.Type)
		if detail := stateDetail(s); detail != "" {
			label += `<BR/><FONT POINT-SIZE="8">` + detail + `</FONT>`
		}
		fillcolor := stateColor(s)
		fmt.Fprintf(w, "  s%d [shape=\"record\", style=\"rounded,filled\", fillcolor=\"%s\", label=<%s> ]\n",
			i, fillcolor, label)
	}

	for i, s := range prog.States {
		if s.Next != nil {
			fmt.Fprintf(w, "  s%d -> s%d [ color=\"black\" ]\n", i, i+*s.Next)
		}
		if s.Type == fsm.Choice {
			fmt.Fprintf(w, "  s%d -> s%d [ color=\"green\" label=\"then\" ]\n", i, i+s.Then)
			fmt.Fprintf(w, "  s%d -> s%d [ color=\"red\" label=\"else\" ]\n", i, i+s.Else)
		}
		if s.Type == fsm.Try {
			fmt.Fprintf(w, "  s%d -> s%d [ color=\"orange\" label=\"catch\" ]\n", i, i+s.Catch)
		}
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

func stateColor(s fsm.State) string {
	switch s.Type {
	case fsm.Action:
		return "#2d93ad"
	case fsm.Choice:
		return "#f9c74f"
	case fsm.Try:
		return "#f98b8b"
	case fsm.Pass:
		return "#99ddc8"
	default:
		return "#52aa5e"
	}
}

func stateDetail(s fsm.State) string {
	var ybytes []byte
	var err error
	switch s.Type {
	case fsm.Action:
		return escape(s.Name)
	case fsm.Function:
		if s.Exec != nil {
			return escape(s.Exec.Code)
		}
		return ""
	case fsm.Literal:
		ybytes, err = yaml.Marshal(s.Value)
	case fsm.Let:
		ybytes, err = yaml.Marshal(s.Decls)
	default:
		return ""
	}
	if err != nil {
		return escape(err.Error())
	}
	label := escape(strings.TrimRight(string(ybytes), "\n"))
	label = strings.Replace(label, "\n", `<BR ALIGN="LEFT"/>`, -1)
	return label
}

func escape(s string) string {
	s = strings.Replace(s, "<", "&lt;", -1)
	s = strings.Replace(s, ">", "&gt;", -1)
	return s
}
