package fsm

import (
	"github.com/Comcast/faas-compose/compose"
)

// Compile lowers a Task to a flat FSM, following spec.md §4.2's
// lowering rules exactly.  Compile is referentially transparent:
// identical Tasks produce equal FSMs.
func Compile(t *compose.Task) (*FSM, error) {
	states, err := compileTask(t)
	if err != nil {
		return nil, err
	}
	f := &FSM{States: states}
	if err := CheckReachable(f); err != nil {
		return nil, err
	}
	return f, nil
}

// appendBlock appends block to *out.  If *out is non-empty and its
// current last state has no Next set, Next defaults to +1 so the two
// blocks fall through into each other -- offsets are relative, so this
// is correct regardless of either block's length or final placement.
func appendBlock(out *[]State, block []State) {
	if n := len(*out); n > 0 && (*out)[n-1].Next == nil {
		one := 1
		(*out)[n-1].Next = &one
	}
	*out = append(*out, block...)
}

func setNextAbs(states []State, idx, target int) {
	off := target - idx
	states[idx].Next = &off
}

func prependPop(block []State) []State {
	one := 1
	pop := State{Type: Pop, Next: &one}
	return append([]State{pop}, block...)
}

func compileTask(t *compose.Task) ([]State, error) {
	if t == nil {
		return []State{{Type: Pass}}, nil
	}
	switch t.Kind {
	case compose.KindSequence:
		return compileSequence(t.Children)
	case compose.KindAction:
		return []State{{Type: Action, Name: t.ActionName}}, nil
	case compose.KindFunction:
		return []State{{Type: Function, Exec: t.Exec}}, nil
	case compose.KindLiteral:
		return []State{{Type: Literal, Value: t.Value}}, nil
	case compose.KindIf:
		return compileIf(t)
	case compose.KindWhile:
		return compileWhile(t)
	case compose.KindTry:
		return compileTry(t)
	case compose.KindFinally:
		return compileFinally(t)
	case compose.KindLet:
		return compileLet(t)
	case compose.KindRetain:
		return compileRetain(t)
	default:
		return nil, &CompileError{Reason: "unknown task kind", Kind: string(t.Kind)}
	}
}

func compileSequence(children []*compose.Task) ([]State, error) {
	if len(children) == 0 {
		return []State{{Type: Pass}}, nil
	}
	var out []State
	for _, c := range children {
		cs, err := compileTask(c)
		if err != nil {
			return nil, err
		}
		appendBlock(&out, cs)
	}
	return out, nil
}

// compileIf implements: optionally prepend push; emit [test]; emit
// choice{then:+1, else:+(|cons'|+1)}; emit cons' (prepended with pop
// unless nosave) whose last next jumps past alt'; emit alt'
// (prepended with pop unless nosave) ending in a pass.
func compileIf(t *compose.Task) ([]State, error) {
	var out []State

	if !t.NoSave {
		appendBlock(&out, []State{{Type: Push}})
	}

	testStates, err := compileTask(t.Test)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, testStates)

	choiceIdx := len(out)
	appendBlock(&out, []State{{}}) // placeholder, filled in below

	consStart := len(out)
	consStates, err := compileTask(t.Consequent)
	if err != nil {
		return nil, err
	}
	if !t.NoSave {
		consStates = prependPop(consStates)
	}
	appendBlock(&out, consStates)
	consEnd := len(out)

	altStart := len(out)
	altStates, err := compileTask(t.Alternate)
	if err != nil {
		return nil, err
	}
	if !t.NoSave {
		altStates = prependPop(altStates)
	}
	appendBlock(&out, altStates)

	// Trailing convergence pass; both branches fall into it.
	appendBlock(&out, []State{{Type: Pass}})
	convergeIdx := len(out) - 1

	out[choiceIdx] = State{Type: Choice, Then: consStart - choiceIdx, Else: altStart - choiceIdx}
	setNextAbs(out, consEnd-1, convergeIdx)
	// altStates' last state falls through to the trailing pass via
	// appendBlock's default +1 (already set, since converge pass was
	// appended immediately after).

	return out, nil
}

// compileWhile implements: optionally prepend push; emit [test]; emit
// choice{then:+1, else:+(|body'|+1)}; emit body' (the body, prepended
// with pop unless nosave) whose last next is the negative offset back
// to state 0 of this block (the push, or the test under nosave); then
// a trailing pass (prepended with pop unless nosave).  Without nosave,
// every iteration's body therefore starts from the params saved by the
// push, and the loop exits with the last body's output.
func compileWhile(t *compose.Task) ([]State, error) {
	var out []State

	if !t.NoSave {
		appendBlock(&out, []State{{Type: Push}})
	}

	testStates, err := compileTask(t.Test)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, testStates)

	choiceIdx := len(out)
	appendBlock(&out, []State{{}})

	bodyStart := len(out)
	bodyStates, err := compileTask(t.Body)
	if err != nil {
		return nil, err
	}
	if !t.NoSave {
		bodyStates = prependPop(bodyStates)
	}
	appendBlock(&out, bodyStates)
	bodyEnd := len(out)
	setNextAbs(out, bodyEnd-1, 0)

	trailStates := []State{{Type: Pass}}
	if !t.NoSave {
		trailStates = prependPop(trailStates)
	}
	trailStart := len(out)
	appendBlock(&out, trailStates)

	out[choiceIdx] = State{Type: Choice, Then: bodyStart - choiceIdx, Else: trailStart - choiceIdx}

	return out, nil
}

// compileTry implements: emit try{catch:+(1+|body|)}; emit body whose
// last next skips past the handler; emit handler ending in a pass.
func compileTry(t *compose.Task) ([]State, error) {
	var out []State

	tryIdx := 0
	appendBlock(&out, []State{{}})

	bodyStates, err := compileTask(t.Body)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, bodyStates)
	bodyEnd := len(out)

	handlerStates, err := compileTask(t.Handler)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, handlerStates)

	afterHandler := len(out)
	appendBlock(&out, []State{{Type: Pass}})

	setNextAbs(out, bodyEnd-1, afterHandler)
	// Keep the placeholder's Next (+1, set by appendBlock) so the try
	// state falls through into the body.
	out[tryIdx] = State{Type: Try, Next: out[tryIdx].Next, Catch: bodyEnd - tryIdx}

	return out, nil
}

// compileFinally implements: emit try{catch:+(1+|body|+1)}; emit
// body; emit exit (unwinds the try frame on success); emit finalizer.
func compileFinally(t *compose.Task) ([]State, error) {
	var out []State

	tryIdx := 0
	appendBlock(&out, []State{{}})

	bodyStates, err := compileTask(t.Body)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, bodyStates)

	appendBlock(&out, []State{{Type: Exit}})
	finalizerStart := len(out)

	finalizerStates, err := compileTask(t.Finalizer)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, finalizerStates)

	out[tryIdx] = State{Type: Try, Next: out[tryIdx].Next, Catch: finalizerStart - tryIdx}

	return out, nil
}

// compileLet implements: let{let:decls}, body, exit.
func compileLet(t *compose.Task) ([]State, error) {
	var out []State
	appendBlock(&out, []State{{Type: Let, Decls: t.Declarations}})

	bodyStates, err := compileTask(t.Body)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, bodyStates)

	appendBlock(&out, []State{{Type: Exit}})

	return out, nil
}

// compileRetain implements: push{field?}, body, pop{collect:true}.
func compileRetain(t *compose.Task) ([]State, error) {
	var out []State
	appendBlock(&out, []State{{Type: Push, Field: t.Field}})

	bodyStates, err := compileTask(t.Body)
	if err != nil {
		return nil, err
	}
	appendBlock(&out, bodyStates)

	appendBlock(&out, []State{{Type: Pop, Collect: true}})

	return out, nil
}
