package conductor

import (
	"context"
	"fmt"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/interpreters"
)

// stepOutcome is what a single step produced: either a continuation
// to keep running (next/stack/params set, done false), or a terminal
// Outcome (done true) -- either because the state suspended on an
// action or because an interpreter invariant was violated.
type stepOutcome struct {
	next   *int
	stack  Stack
	params interface{}

	done    bool
	outcome *Outcome
}

// step executes exactly one FSM state, implementing spec.md §4.3's
// "Step semantics" table.
func step(ctx context.Context, f *fsm.FSM, current int, stack Stack, params interface{}, reg interpreters.Registry) *stepOutcome {
	st := f.States[current]

	var next *int
	if st.Next != nil {
		n := current + *st.Next
		next = &n
	}

	switch st.Type {
	case fsm.Choice:
		n := current + st.Else
		if isChoiceTrue(params) {
			n = current + st.Then
		}
		next = &n

	case fsm.Try:
		target := current + st.Catch
		stack = push(stack, Frame{Catch: &target})

	case fsm.Let:
		decls, err := deepCloneMap(st.Decls)
		if err != nil {
			return internalOutcome(current, "let: "+err.Error())
		}
		stack = push(stack, Frame{Let: decls})

	case fsm.Exit:
		_, rest, ok := pop(stack)
		if !ok {
			return internalOutcome(current, "exit: stack underflow")
		}
		stack = rest

	case fsm.Push:
		snapshot := params
		if st.Field != "" {
			snapshot = fieldOf(params, st.Field)
		}
		clone, err := deepClone(snapshot)
		if err != nil {
			return internalOutcome(current, "push: "+err.Error())
		}
		stack = push(stack, Frame{Params: clone})

	case fsm.Pop:
		top, rest, ok := pop(stack)
		if !ok {
			return internalOutcome(current, "pop: stack underflow")
		}
		stack = rest
		if st.Collect {
			params = map[string]interface{}{"params": top.Params, "result": params}
		} else {
			params = top.Params
		}

	case fsm.Action:
		// An empty stack must still encode as a JSON array, since
		// parseResume rejects a null $resume.stack.
		if stack == nil {
			stack = Stack{}
		}
		return &stepOutcome{done: true, outcome: &Outcome{
			Kind:   Continuation,
			Action: st.Name,
			Params: params,
			Resume: Resume{State: derefOr(next, -1), Stack: stack},
		}}

	case fsm.Literal:
		clone, err := deepClone(st.Value)
		if err != nil {
			return internalOutcome(current, "literal: "+err.Error())
		}
		params = clone
		params, next = inspect(params, stack, next, &stack)

	case fsm.Function:
		newParams, newStack, err := evalFunction(ctx, current, st.Exec, params, stack, reg)
		if err != nil {
			return internalOutcome(current, "function: "+err.Error())
		}
		params, stack = newParams, newStack
		params, next = inspect(params, stack, next, &stack)

	case fsm.Pass:
		params, next = inspect(params, stack, next, &stack)

	default:
		return internalOutcome(current, fmt.Sprintf("unknown state type %q", st.Type))
	}

	return &stepOutcome{next: next, stack: stack, params: params}
}

func internalOutcome(state int, reason string) *stepOutcome {
	return &stepOutcome{done: true, outcome: &Outcome{
		Kind:         Error,
		Code:         500,
		ErrorMessage: (&InternalError{Reason: reason, State: state}).Error(),
	}}
}

func derefOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// isChoiceTrue implements the stricter of the two loose/strict
// readings spec.md §9 flags as an open question: params.value must be
// the boolean true, not merely truthy.
func isChoiceTrue(params interface{}) bool {
	m, is := params.(map[string]interface{})
	if !is {
		return false
	}
	b, is := m["value"].(bool)
	return is && b
}

func fieldOf(params interface{}, field string) interface{} {
	m, is := params.(map[string]interface{})
	if !is {
		return nil
	}
	return m[field]
}

func deepCloneMap(m map[string]interface{}) (map[string]interface{}, error) {
	cloned, err := deepClone(m)
	if err != nil {
		return nil, err
	}
	out, is := cloned.(map[string]interface{})
	if !is {
		return map[string]interface{}{}, nil
	}
	return out, nil
}

// inspect implements spec.md §4.3's "inspect" routine: non-object
// params are wrapped; a params.error reroutes execution to the
// nearest try frame's catch target, consuming (shifting away) every
// frame walked in the process. It is idempotent: called again with no
// error present, it is a no-op.
func inspect(params interface{}, stack Stack, next *int, stackOut *Stack) (interface{}, *int) {
	m, is := params.(map[string]interface{})
	if !is {
		return map[string]interface{}{"value": params}, next
	}

	errVal, hasError := m["error"]
	if !hasError {
		return params, next
	}

	params = map[string]interface{}{"error": errVal}

	for len(stack) > 0 {
		top := stack[0]
		stack = stack[1:]
		if top.Catch != nil {
			n := *top.Catch
			*stackOut = stack
			return params, &n
		}
	}
	*stackOut = stack
	return params, nil
}

// evalFunction evaluates exec's code against params and the
// environment assembled from stack (spec.md §4.3's "function" row and
// §4.4), then writes any mutations back into stack.
func evalFunction(ctx context.Context, current int, exec *compose.Exec, params interface{}, stack Stack, reg interpreters.Registry) (interface{}, Stack, error) {
	stack = stack.Copy()
	for i := range stack {
		if stack[i].Let != nil {
			stack[i].Let = copyStringMap(stack[i].Let)
		}
	}

	interp, err := interpreters.Lookup(reg, exec.Kind)
	if err != nil {
		return nil, nil, err
	}

	env := assembleEnv(stack)
	result, err := interp.Exec(ctx, exec, params, env)
	if err != nil {
		return nil, nil, err
	}

	if result.Env != nil {
		if err := writeBack(stack, result.Env); err != nil {
			return nil, nil, err
		}
	}

	switch result.Outcome {
	case interpreters.Threw:
		return map[string]interface{}{"error": fmt.Sprintf("An exception was caught at state %d", current)}, stack, nil
	case interpreters.ReturnedFunction:
		return map[string]interface{}{"error": fmt.Sprintf("State %d evaluated to a function", current)}, stack, nil
	case interpreters.ReturnedUndefined:
		return params, stack, nil
	default:
		clone, err := deepClone(result.Value)
		if err != nil {
			return nil, nil, err
		}
		return clone, stack, nil
	}
}

func copyStringMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
