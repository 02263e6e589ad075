package platform

import (
	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/platform/boltstore"
)

// Manifest annotates a deployed composition's body with the original
// AST, per spec.md §6.1's "manifest carries an annotation {key:
// conductor, value: <original AST>} so tools can recover the source
// composition."
type Manifest struct {
	Key   string      `json:"key" yaml:",omitempty"`
	Value interface{} `json:"value" yaml:",omitempty"`
}

// Body is the deployable shape of a named composition: the compiled,
// flat FSM plus the manifest that lets tooling recover its source
// (spec.md §6.1).
type Body struct {
	FSM      *fsm.FSM    `json:"fsm" yaml:",omitempty"`
	Manifest []Manifest  `json:"annotations" yaml:",omitempty"`
	Source   interface{} `json:"-" yaml:"-"`
}

// Deploy compiles task, wraps it in its deployable Body, and writes
// it plus every ActionArtifact hoisted onto task into store, using
// boltstore's delete-then-update Deploy semantics (spec.md §6.3). It
// returns the count of successful artifact updates, task's own body
// included.
func Deploy(store *boltstore.Store, task *compose.Task) (int, error) {
	if task.Name == "" {
		return 0, &compose.ConstructionError{Kind: "deploy", Reason: "requires a named composition", Arg: task}
	}

	prog, err := fsm.Compile(task)
	if err != nil {
		return 0, err
	}

	ast, err := compose.Canonicalize(taskToAST(task))
	if err != nil {
		return 0, err
	}

	recs := make([]*boltstore.Record, 0, len(task.Artifacts)+1)
	recs = append(recs, &boltstore.Record{
		Name:    task.Name,
		Version: task.Version,
		Body: Body{
			FSM:      prog,
			Manifest: []Manifest{{Key: "conductor", Value: ast}},
		},
	})
	for _, a := range task.Artifacts {
		body := a.Body
		if a.Sequence != nil {
			body = map[string]interface{}{"sequence": a.Sequence}
		}
		recs = append(recs, &boltstore.Record{Name: a.Name, Body: body})
	}

	return store.DeployAll(recs)
}

// taskToAST renders task as a plain JSON-able value for the
// manifest's "conductor" annotation.
func taskToAST(task *compose.Task) interface{} {
	js, err := compose.Canonicalize(task)
	if err != nil {
		return nil
	}
	return js
}
