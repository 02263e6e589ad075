package conductor_test

import (
	"context"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/conductor"
	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/interpreters"
	"github.com/Comcast/faas-compose/interpreters/noop"
)

// This test exercises the conductor's state machinery (a function state's
// step/resume handling) without depending on goja: the function's exec
// kind resolves to interpreters/noop, which always reports
// ReturnedUndefined and leaves params untouched.
func TestFunctionViaNoopInterpreterPreservesParams(t *testing.T) {
	fn, err := compose.Function(map[string]interface{}{"kind": "noop", "code": "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	prog, err := fsm.Compile(fn)
	if err != nil {
		t.Fatal(err)
	}

	reg := interpreters.Registry{"noop": &noop.Interpreter{Silent: true}}
	out, err := conductor.Run(context.Background(), prog, map[string]interface{}{"a": 1}, reg)
	if err != nil {
		t.Fatalf("Run returned an error: %s", err)
	}
	if out.Kind != conductor.Success {
		t.Fatalf("want Success, got %v (%s)", out.Kind, out.ErrorMessage)
	}
	m := out.Params.(map[string]interface{})
	if m["a"].(float64) != 1 {
		t.Fatalf("want a=1 unchanged, got %#v", m)
	}
}

// Without a registry entry for the exec's kind, the conductor reports an
// error rather than silently succeeding.
func TestFunctionUnknownKindIsError(t *testing.T) {
	fn, err := compose.Function(map[string]interface{}{"kind": "missing", "code": "ignored"})
	if err != nil {
		t.Fatal(err)
	}
	prog, err := fsm.Compile(fn)
	if err != nil {
		t.Fatal(err)
	}

	reg := interpreters.Registry{"noop": &noop.Interpreter{Silent: true}}
	out, err := conductor.Run(context.Background(), prog, map[string]interface{}{}, reg)
	if err != nil {
		t.Fatalf("Run returned an error: %s", err)
	}
	if out.Kind != conductor.Error {
		t.Fatalf("want Error for an unregistered exec kind, got %v", out.Kind)
	}
}
