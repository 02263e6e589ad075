package conductor

// Kind discriminates the four shapes a conductor invocation can
// return (spec.md §6.2).
type Kind int

const (
	Success Kind = iota
	Error
	Continuation
	BadRequest
)

// Outcome is one conductor invocation's result, in whichever of the
// four wire shapes applies. Encode renders it to the JSON-ready value
// the platform expects.
type Outcome struct {
	Kind Kind

	// Success
	Params interface{}

	// Error / BadRequest
	ErrorMessage string
	Code         int

	// Continuation
	Action  string
	Resume  Resume
}

// Encode renders o to the wire shape spec.md §6.2 defines.
func (o *Outcome) Encode() map[string]interface{} {
	switch o.Kind {
	case Success:
		return map[string]interface{}{"params": o.Params}
	case Continuation:
		return map[string]interface{}{
			"action": o.Action,
			"params": o.Params,
			"state": map[string]interface{}{
				"$resume": map[string]interface{}{
					"state": o.Resume.State,
					"stack": o.Resume.Stack,
				},
			},
		}
	case BadRequest:
		return map[string]interface{}{"code": 400, "error": o.ErrorMessage}
	case Error:
		code := o.Code
		if code == 0 {
			code = 500
		}
		return map[string]interface{}{"error": o.ErrorMessage, "code": code}
	default:
		return map[string]interface{}{"error": "unknown outcome kind", "code": 500}
	}
}
