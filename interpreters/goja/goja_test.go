package goja

import (
	"context"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/interpreters"
)

func exec(t *testing.T, code string, params interface{}, env map[string]interface{}) *interpreters.Result {
	t.Helper()
	i := NewInterpreter()
	r, err := i.Exec(context.Background(), &compose.Exec{Code: code}, params, env)
	if err != nil {
		t.Fatalf("Exec returned an internal error: %s", err)
	}
	return r
}

func TestExecReturnsValue(t *testing.T) {
	r := exec(t, `(params) => ({liked: params.snack})`, map[string]interface{}{"snack": "chips"}, nil)
	if r.Outcome != interpreters.OK {
		t.Fatalf("want OK, got %v (%s)", r.Outcome, r.Message)
	}
	m, is := r.Value.(map[string]interface{})
	if !is {
		t.Fatalf("value %#v is a %T, not a map", r.Value, r.Value)
	}
	if m["liked"] != "chips" {
		t.Fatalf("got %#v", m)
	}
}

func TestExecReturnsUndefined(t *testing.T) {
	r := exec(t, `(params) => {}`, map[string]interface{}{"x": 1}, nil)
	if r.Outcome != interpreters.ReturnedUndefined {
		t.Fatalf("want ReturnedUndefined, got %v", r.Outcome)
	}
}

func TestExecThrows(t *testing.T) {
	r := exec(t, `(params) => { throw "boom"; }`, nil, nil)
	if r.Outcome != interpreters.Threw {
		t.Fatalf("want Threw, got %v", r.Outcome)
	}
	if r.Message == "" {
		t.Fatal("expected a non-empty exception message")
	}
}

func TestExecReturnsFunction(t *testing.T) {
	r := exec(t, `(params) => (() => 1)`, nil, nil)
	if r.Outcome != interpreters.ReturnedFunction {
		t.Fatalf("want ReturnedFunction, got %v", r.Outcome)
	}
}

func TestExecEnvRoundTrip(t *testing.T) {
	env := map[string]interface{}{"count": float64(3)}
	r := exec(t, `(params) => { count = count - 1; return {n: count}; }`, nil, env)
	if r.Outcome != interpreters.OK {
		t.Fatalf("want OK, got %v (%s)", r.Outcome, r.Message)
	}
	if r.Env["count"] != int64(2) {
		t.Fatalf("expected count to be mutated to 2, got %#v", r.Env["count"])
	}
}

func TestExecBadSyntaxThrows(t *testing.T) {
	r := exec(t, `(params) => {`, nil, nil)
	if r.Outcome != interpreters.Threw {
		t.Fatalf("want Threw for a compile error, got %v", r.Outcome)
	}
}
