package conductor

import "fmt"

// Resume is the continuation token carried in the "$resume" field of
// an action's input parameters (spec.md §3.4, §6.2).
type Resume struct {
	State int   `json:"state"`
	Stack Stack `json:"stack"`
}

// splitResume inspects rawParams for a "$resume" key. If absent, it
// returns a fresh (state 0, empty stack) entry and rawParams
// untouched. If present, it validates the shape and returns the
// restored continuation with "$resume" stripped from the params.
func splitResume(rawParams interface{}) (state int, stack Stack, params interface{}, resuming bool, err error) {
	m, is := rawParams.(map[string]interface{})
	if !is {
		return 0, nil, rawParams, false, nil
	}
	raw, have := m["$resume"]
	if !have {
		return 0, nil, rawParams, false, nil
	}

	r, err := parseResume(raw)
	if err != nil {
		return 0, nil, nil, false, err
	}

	rest := make(map[string]interface{}, len(m)-1)
	for k, v := range m {
		if k == "$resume" {
			continue
		}
		rest[k] = v
	}
	return r.State, r.Stack, rest, true, nil
}

func parseResume(raw interface{}) (*Resume, error) {
	m, is := raw.(map[string]interface{})
	if !is {
		return nil, &BadRequestError{Reason: "$resume must be an object"}
	}

	stateRaw, have := m["state"]
	if !have {
		return nil, &BadRequestError{Reason: "$resume.state is required"}
	}
	state, is := toInt(stateRaw)
	if !is {
		return nil, &BadRequestError{Reason: "$resume.state must be an integer"}
	}

	stackRaw, have := m["stack"]
	if !have {
		return nil, &BadRequestError{Reason: "$resume.stack is required"}
	}
	// An in-process caller may hand back Outcome.Encode's value as is,
	// whose stack is still a typed Stack rather than decoded JSON.
	if typed, is := stackRaw.(Stack); is && typed != nil {
		return &Resume{State: state, Stack: typed.Copy()}, nil
	}
	stackSlice, is := stackRaw.([]interface{})
	if !is {
		return nil, &BadRequestError{Reason: "$resume.stack must be an array"}
	}

	stack := make(Stack, 0, len(stackSlice))
	for i, raw := range stackSlice {
		f, err := parseFrame(raw)
		if err != nil {
			return nil, &BadRequestError{Reason: fmt.Sprintf("$resume.stack[%d]: %s", i, err)}
		}
		stack = append(stack, f)
	}

	return &Resume{State: state, Stack: stack}, nil
}

func parseFrame(raw interface{}) (Frame, error) {
	m, is := raw.(map[string]interface{})
	if !is {
		return Frame{}, fmt.Errorf("frame must be an object")
	}
	var f Frame
	if c, have := m["catch"]; have {
		n, is := toInt(c)
		if !is {
			return Frame{}, fmt.Errorf("catch must be an integer")
		}
		f.Catch = &n
	}
	if l, have := m["let"]; have {
		lm, is := l.(map[string]interface{})
		if !is {
			return Frame{}, fmt.Errorf("let must be an object")
		}
		f.Let = lm
	}
	if p, have := m["params"]; have {
		f.Params = p
	}
	return f, nil
}

func toInt(x interface{}) (int, bool) {
	switch v := x.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
