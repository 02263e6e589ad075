package conductor

import (
	"context"

	"github.com/Comcast/faas-compose/fsm"
	"github.com/Comcast/faas-compose/interpreters"
)

// Run drives one platform invocation of the conductor over program:
// it restores (or starts) a (state, stack, params) triple from
// rawParams and steps until it either suspends on an action or
// reaches a terminal state (spec.md §4.3).
//
// reg resolves a function state's Exec.Kind to an Interpreter; a nil
// reg falls back to interpreters.DefaultRegistry.
func Run(ctx context.Context, program *fsm.FSM, rawParams interface{}, reg interpreters.Registry) (*Outcome, error) {
	state, stack, params, resuming, err := splitResume(rawParams)
	if err != nil {
		if br, is := err.(*BadRequestError); is {
			return &Outcome{Kind: BadRequest, ErrorMessage: br.Error()}, nil
		}
		return nil, err
	}

	current := &state
	if !resuming {
		current = zero()
		// A fresh invocation's params are normalized to plain JSON
		// values (numbers become float64), as the platform delivers
		// them; resumed params are taken as delivered.
		if params, err = deepClone(params); err != nil {
			return nil, err
		}
	} else if state < 0 {
		current = nil
	}

	if resuming {
		var next *int
		params, next = inspect(params, stack, current, &stack)
		current = next
	}

	for {
		if current == nil {
			return terminal(params), nil
		}
		if *current < 0 || program.Len() <= *current {
			return &Outcome{
				Kind:         Error,
				Code:         500,
				ErrorMessage: (&InternalError{Reason: "state index out of range", State: *current}).Error(),
			}, nil
		}

		so := step(ctx, program, *current, stack, params, reg)
		if so.done {
			return so.outcome, nil
		}
		current, stack, params = so.next, so.stack, so.params
	}
}

func zero() *int {
	z := 0
	return &z
}

func terminal(params interface{}) *Outcome {
	if m, is := params.(map[string]interface{}); is {
		if errVal, hasError := m["error"]; hasError {
			code := 500
			if c, is := toInt(m["code"]); is {
				code = c
			}
			msg, _ := errVal.(string)
			return &Outcome{Kind: Error, ErrorMessage: msg, Code: code}
		}
	}
	return &Outcome{Kind: Success, Params: params}
}
