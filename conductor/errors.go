package conductor

import (
	"encoding/json"
	"fmt"
)

// deepClone round-trips x through JSON, the cloning discipline spec.md
// §9 mandates ("the chosen runtime should canonicalize to JSON before
// cloning so that functions and cycles are reliably rejected").
func deepClone(x interface{}) (interface{}, error) {
	bs, err := json.Marshal(x)
	if err != nil {
		return nil, fmt.Errorf("conductor: value is not JSON-representable: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(bs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BadRequestError occurs when an inbound $resume is malformed
// (spec.md §4.3's "Initial entry").
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("conductor: bad request: %s", e.Reason)
}

// InternalError occurs on an interpreter invariant violation: stack
// underflow, an unknown state type, or a value that can't be
// deep-cloned (spec.md §7).
type InternalError struct {
	Reason string
	State  int
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("conductor: internal error at state %d: %s", e.State, e.Reason)
}
