package fsm_test

import (
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/fsm"
)

func mustTask(t *testing.T, task *compose.Task, err error) *compose.Task {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return task
}

func TestEmptySequenceCompilesToOnePass(t *testing.T) {
	seqTask, seqErr := compose.Sequence()
	task := mustTask(t, seqTask, seqErr)
	prog, err := fsm.Compile(task)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Len() != 1 || prog.States[0].Type != fsm.Pass {
		t.Fatalf("want a single pass state, got %#v", prog.States)
	}
}

func TestCompileIsReferentiallyTransparent(t *testing.T) {
	build := func() *fsm.FSM {
		litTask, litErr := compose.Literal(map[string]interface{}{"x": 1})
		lit := mustTask(t, litTask, litErr)
		fnTask, fnErr := compose.Function("p=>p")
		fn := mustTask(t, fnTask, fnErr)
		seqTask, seqErr := compose.Sequence(lit, fn)
		task := mustTask(t, seqTask, seqErr)
		prog, err := fsm.Compile(task)
		if err != nil {
			t.Fatal(err)
		}
		return prog
	}
	a, b := build(), build()
	if len(a.States) != len(b.States) {
		t.Fatalf("lengths differ: %d vs %d", len(a.States), len(b.States))
	}
	for i := range a.States {
		if a.States[i].Type != b.States[i].Type {
			t.Fatalf("state %d types differ: %v vs %v", i, a.States[i].Type, b.States[i].Type)
		}
	}
}

func TestIfOffsets(t *testing.T) {
	testTaskV, testErr := compose.Literal(map[string]interface{}{"value": true})
	test := mustTask(t, testTaskV, testErr)
	consTask, consErr := compose.Literal("yes")
	cons := mustTask(t, consTask, consErr)
	altTask, altErr := compose.Literal("no")
	alt := mustTask(t, altTask, altErr)
	ifTask, ifErr := compose.If(test, cons, alt)
	task := mustTask(t, ifTask, ifErr)

	prog, err := fsm.Compile(task)
	if err != nil {
		t.Fatal(err)
	}
	// push, test, choice, pop, cons, pop, alt, pass
	var choiceIdx int
	for i, s := range prog.States {
		if s.Type == fsm.Choice {
			choiceIdx = i
		}
	}
	choice := prog.States[choiceIdx]
	if choice.Then != 1 {
		t.Fatalf("want then=+1, got %d", choice.Then)
	}
}

func TestTryCatchTargetsHandler(t *testing.T) {
	bodyTask, bodyErr := compose.Function("()=>{throw 0}")
	body := mustTask(t, bodyTask, bodyErr)
	handlerTask, handlerErr := compose.Function("e=>({ok:true})")
	handler := mustTask(t, handlerTask, handlerErr)
	tryTask, tryErr := compose.Try(body, handler)
	task := mustTask(t, tryTask, tryErr)

	prog, err := fsm.Compile(task)
	if err != nil {
		t.Fatal(err)
	}
	tryState := prog.States[0]
	if tryState.Type != fsm.Try {
		t.Fatalf("want first state to be try, got %v", tryState.Type)
	}
	catchTarget := 0 + tryState.Catch
	if prog.States[catchTarget].Type != fsm.Function {
		t.Fatalf("catch target %d is a %v, not the handler", catchTarget, prog.States[catchTarget].Type)
	}
}

func TestUnreachableStateIsRejected(t *testing.T) {
	f := &fsm.FSM{States: []fsm.State{
		{Type: fsm.Pass},
		{Type: fsm.Pass}, // unreachable: nothing points at index 1
	}}
	if err := fsm.CheckReachable(f); err == nil {
		t.Fatal("want an error for an unreachable state")
	}
}

func TestOutOfRangeJumpIsRejected(t *testing.T) {
	bad := 10
	f := &fsm.FSM{States: []fsm.State{
		{Type: fsm.Pass, Next: &bad},
	}}
	if err := fsm.CheckReachable(f); err == nil {
		t.Fatal("want an error for an out-of-range jump")
	}
}
