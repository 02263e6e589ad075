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

// compose-debug is a command-line composition debugger in the spirit
// of gdb, following cmd/mdb's regex-dispatch REPL idiom but stepping
// one composition's conductor.Outcome across run/resume commands
// instead of walking a crew of pattern-matching machines.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/gorilla/websocket"

	"github.com/Comcast/faas-compose/conductor"
	"github.com/Comcast/faas-compose/fsm"
	_ "github.com/Comcast/faas-compose/interpreters/goja"
	"github.com/Comcast/faas-compose/specfile"
)

type Debugger struct {
	specFile string
	prog     *fsm.FSM
	last     *conductor.Outcome

	live *liveBroadcaster
}

func main() {
	var (
		specFile  = flag.String("s", "", "composition YAML file (required)")
		watchCron = flag.String("watch", "", "cron expression for periodic recompile (e.g. '*/30 * * * * *')")
		live      = flag.Bool("live", false, "stream run/resume outcomes to websocket clients")
		liveAddr  = flag.String("live-addr", ":8090", "listen address for -live")
	)
	flag.Parse()

	if *specFile == "" {
		fmt.Fprintln(os.Stderr, "error: -s is required")
		flag.Usage()
		os.Exit(1)
	}

	d := &Debugger{specFile: *specFile}
	if err := d.reload(); err != nil {
		log.Fatalf("loading %s: %v", *specFile, err)
	}

	if *live {
		d.live = newLiveBroadcaster()
		go func() {
			log.Printf("compose-debug -live listening on %s", *liveAddr)
			log.Fatal(d.live.listenAndServe(*liveAddr))
		}()
	}

	if *watchCron != "" {
		expr, err := cronexpr.Parse(*watchCron)
		if err != nil {
			log.Fatalf("parsing -watch cron expression: %v", err)
		}
		go d.watch(expr)
	}

	if err := d.repl(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func (d *Debugger) reload() error {
	task, err := specfile.Load(d.specFile)
	if err != nil {
		return err
	}
	prog, err := fsm.Compile(task)
	if err != nil {
		return err
	}
	d.prog = prog
	return nil
}

// watch recompiles the spec file at every cron firing, the local-dev
// stand-in for a platform that redeploys on a schedule.
func (d *Debugger) watch(expr *cronexpr.Expression) {
	for {
		now := time.Now()
		next := expr.Next(now)
		if next.IsZero() {
			return
		}
		<-time.After(next.Sub(now))
		if err := d.reload(); err != nil {
			log.Printf("compose-debug -watch: reload failed: %v", err)
			continue
		}
		log.Printf("compose-debug -watch: recompiled %s", d.specFile)
	}
}

var (
	runCmd    = regexp.MustCompile(`^run(?: +(.*))?$`)
	resumeCmd = regexp.MustCompile(`^resume +(.*)$`)
	printCmd  = regexp.MustCompile(`^print`)
	reloadCmd = regexp.MustCompile(`^reload`)
	helpCmd   = regexp.MustCompile(`^(help|h|\?)`)
)

func (d *Debugger) repl(in io.Reader, w io.Writer) error {
	say := func(format string, args ...interface{}) { fmt.Fprintf(w, "# "+format+"\n", args...) }

	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var ss []string
		switch {
		case helpCmd.MatchString(line):
			say("%s", doc())

		case reloadCmd.MatchString(line):
			if err := d.reload(); err != nil {
				say("error: %v", err)
				continue
			}
			say("reloaded %s", d.specFile)

		case printCmd.MatchString(line):
			if d.last == nil {
				say("no outcome yet; run or resume first")
				continue
			}
			js, _ := json.MarshalIndent(d.last.Encode(), "", "  ")
			say("%s", js)

		case func() bool { ss = runCmd.FindStringSubmatch(line); return len(ss) > 0 }():
			d.step(say, ss[1])

		case func() bool { ss = resumeCmd.FindStringSubmatch(line); return len(ss) > 0 }():
			d.step(say, ss[1])

		default:
			say("unsupported command: %s", line)
		}
	}
}

func (d *Debugger) step(say func(string, ...interface{}), paramsJSON string) {
	var params interface{}
	if paramsJSON != "" {
		if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
			say("error: couldn't parse params: %v", err)
			return
		}
	}

	outcome, err := conductor.Run(context.Background(), d.prog, params, nil)
	if err != nil {
		say("error: %v", err)
		return
	}
	d.last = outcome

	js, _ := json.Marshal(outcome.Encode())
	say("%s", js)
	if d.live != nil {
		d.live.broadcast(js)
	}
}

func doc() string {
	return `
  run [PARAMS]   step the conductor once from scratch (or continue if PARAMS carries $resume)
  resume RESULT  alias of run, for resuming after an action result
  print          print the last outcome
  reload         recompile the composition from its spec file
  help           show this documentation
`
}

// liveBroadcaster fans out JSON-encoded outcomes to every connected
// websocket client, grounded on cmd/mcrew/service-ws.go's
// sync.Map-of-channels broadcast pattern.
type liveBroadcaster struct {
	upgrader websocket.Upgrader
	conns    sync.Map
}

func newLiveBroadcaster() *liveBroadcaster {
	return &liveBroadcaster{}
}

func (b *liveBroadcaster) listenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		c, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("compose-debug live: upgrade error: %v", err)
			return
		}
		defer c.Close()

		id := c.RemoteAddr().String()
		out := make(chan []byte, 32)
		b.conns.Store(id, out)
		defer b.conns.Delete(id)

		for js := range out {
			if err := c.WriteMessage(websocket.TextMessage, js); err != nil {
				return
			}
		}
	})
	return http.ListenAndServe(addr, mux)
}

func (b *liveBroadcaster) broadcast(js []byte) {
	b.conns.Range(func(_, v interface{}) bool {
		c := v.(chan []byte)
		select {
		case c <- js:
		default:
			log.Printf("compose-debug live: client channel full, dropping")
		}
		return true
	})
}
