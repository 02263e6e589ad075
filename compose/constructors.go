package compose

import (
	"os"
	"strings"
)

// TaskOf implements the `task(x)` coercion from spec.md §4.1: nil
// becomes an empty sequence, an existing *Task is returned as-is, a
// string becomes Action(x), and anything else fails -- including a Go
// function, which (like the original's "native function") cannot be
// serialized and so cannot become a Function.
func TaskOf(x interface{}) (*Task, error) {
	switch v := x.(type) {
	case nil:
		return emptySequence(), nil
	case *Task:
		return v, nil
	case string:
		return Action(v)
	default:
		if isCallable(x) {
			return Function(x)
		}
		return nil, construction("task", "argument must be nil, a *Task, a string (action name), or source text", x)
	}
}

func emptySequence() *Task {
	return &Task{Kind: KindSequence, Children: []*Task{}}
}

// Sequence builds a flattened sequence of Tasks, coercing each
// argument via TaskOf.  A nested sequence's children are spliced in
// (fully flattened); a sequence of exactly one element collapses to
// that element.
func Sequence(xs ...interface{}) (*Task, error) {
	flat := make([]*Task, 0, len(xs))
	t := &Task{Kind: KindSequence}
	for _, x := range xs {
		ct, err := TaskOf(x)
		if err != nil {
			return nil, err
		}
		t.hoist(ct)
		flattenInto(&flat, ct)
	}
	switch len(flat) {
	case 0:
		t.Children = []*Task{}
	case 1:
		// Collapse, but keep hoisted artifacts from every
		// argument, not just the surviving element.
		single := flat[0].Copy()
		single.Artifacts = append(single.Artifacts, t.Artifacts...)
		return single, nil
	default:
		t.Children = flat
	}
	return t, nil
}

// Seq is an alias for Sequence, mirroring spec.md §6.3's "sequence
// (alias seq)".
var Seq = Sequence

func flattenInto(acc *[]*Task, t *Task) {
	if t.Kind == KindSequence {
		for _, c := range t.Children {
			flattenInto(acc, c)
		}
		return
	}
	*acc = append(*acc, t)
}

// If builds a conditional.  Arity is at most four (test, consequent,
// alternate, options); each of test/consequent/alternate is coerced
// via TaskOf.
func If(test, consequent, alternate interface{}, options ...*IfOptions) (*Task, error) {
	opt, err := singleOption("if", options)
	if err != nil {
		return nil, err
	}
	tt, err := TaskOf(test)
	if err != nil {
		return nil, err
	}
	ct, err := TaskOf(consequent)
	if err != nil {
		return nil, err
	}
	at, err := TaskOf(alternate)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindIf, Test: tt, Consequent: ct, Alternate: at}
	if opt != nil {
		t.NoSave = opt.NoSave
	}
	t.hoist(tt)
	t.hoist(ct)
	t.hoist(at)
	return t, nil
}

// While builds a loop.  Arity is at most three (test, body, options).
func While(test, body interface{}, options ...*WhileOptions) (*Task, error) {
	opt, err := singleOption("while", options)
	if err != nil {
		return nil, err
	}
	tt, err := TaskOf(test)
	if err != nil {
		return nil, err
	}
	bt, err := TaskOf(body)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindWhile, Test: tt, Body: bt}
	if opt != nil {
		t.NoSave = opt.NoSave
	}
	t.hoist(tt)
	t.hoist(bt)
	return t, nil
}

// Try builds a try/handler.  Arity is at most three (body, handler,
// options).
func Try(body, handler interface{}, options ...*TryOptions) (*Task, error) {
	if _, err := singleOption("try", options); err != nil {
		return nil, err
	}
	bt, err := TaskOf(body)
	if err != nil {
		return nil, err
	}
	ht, err := TaskOf(handler)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindTry, Body: bt, Handler: ht}
	t.hoist(bt)
	t.hoist(ht)
	return t, nil
}

// Finally builds a body/finalizer.  Arity is at most three (body,
// finalizer, options).
func Finally(body, finalizer interface{}, options ...*FinallyOptions) (*Task, error) {
	if _, err := singleOption("finally", options); err != nil {
		return nil, err
	}
	bt, err := TaskOf(body)
	if err != nil {
		return nil, err
	}
	ft, err := TaskOf(finalizer)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindFinally, Body: bt, Finalizer: ft}
	t.hoist(bt)
	t.hoist(ft)
	return t, nil
}

// Let builds a lexical binding: decls must be a plain, JSON-cloneable
// object, and body is coerced via Sequence.
func Let(decls map[string]interface{}, body ...interface{}) (*Task, error) {
	clean, err := Canonicalize(decls)
	if err != nil {
		return nil, construction("let", "declarations must be JSON-cloneable: "+err.Error(), decls)
	}
	cm, is := clean.(map[string]interface{})
	if !is && clean != nil {
		return nil, construction("let", "declarations must be a plain object", decls)
	}
	bt, err := Sequence(body...)
	if err != nil {
		return nil, err
	}
	t := &Task{Kind: KindLet, Declarations: cm, Body: bt}
	t.hoist(bt)
	return t, nil
}

// Literal builds a literal value node.  v must not be callable; a nil
// v defaults to an empty object.
func Literal(v interface{}, options ...*LiteralOptions) (*Task, error) {
	opt, err := singleOption("literal", options)
	if err != nil {
		return nil, err
	}
	if isCallable(v) {
		return nil, construction("literal", "value must not be callable", v)
	}
	if v == nil {
		v = map[string]interface{}{}
	}
	clean, err := Canonicalize(v)
	if err != nil {
		return nil, construction("literal", "value must be JSON-cloneable: "+err.Error(), v)
	}
	t := &Task{Kind: KindLiteral, Value: clean}
	if opt != nil {
		t.Doc = opt.Doc
	}
	return t, nil
}

// Function builds a user-code node.  exec may be a string (wrapped as
// {kind:"goja:default", code: exec}), an *Exec, or a
// map[string]interface{} with "kind"/"code" keys.  A Go function value
// is rejected: it reports as native code and cannot be serialized to
// source, exactly like the original's native-function check.
func Function(exec interface{}, options ...*FunctionOptions) (*Task, error) {
	if _, err := singleOption("function", options); err != nil {
		return nil, err
	}
	e, err := toExec(exec)
	if err != nil {
		return nil, err
	}
	return &Task{Kind: KindFunction, Exec: e}, nil
}

func toExec(exec interface{}) (*Exec, error) {
	switch v := exec.(type) {
	case string:
		if strings.Contains(v, "[native code]") {
			return nil, construction("function", "native code is not a valid function body", v)
		}
		return &Exec{Kind: "goja:default", Code: v}, nil
	case *Exec:
		c := *v
		return &c, nil
	case Exec:
		return &v, nil
	case map[string]interface{}:
		kind, _ := v["kind"].(string)
		code, _ := v["code"].(string)
		if kind == "" {
			kind = "goja:default"
		}
		return &Exec{Kind: kind, Code: code}, nil
	default:
		if isCallable(exec) {
			return nil, construction("function", "cannot capture a native function; functions must be supplied as source text", exec)
		}
		return nil, construction("function", "unsupported exec value", exec)
	}
}

// Action builds a remote-invocation leaf.  See ActionOptions for the
// artifact-attaching options.
func Action(name string, options ...*ActionOptions) (*Task, error) {
	if len(options) > 1 {
		return nil, construction("action", "too many arguments", options)
	}
	t := &Task{Kind: KindAction, ActionName: name}
	if len(options) == 0 {
		return t, nil
	}
	opt := options[0]
	t.Doc = opt.Doc

	switch {
	case len(opt.Sequence) > 0:
		t.Artifact = &ActionArtifact{
			Name:     name,
			Sequence: autoNamespace(opt.Sequence, namespaceOf(name)),
		}
	case opt.Filename != "":
		bs, err := os.ReadFile(opt.Filename)
		if err != nil {
			return nil, construction("action", "could not read filename: "+err.Error(), opt.Filename)
		}
		t.Artifact = &ActionArtifact{Name: name, Body: string(bs)}
	case opt.Action != nil:
		t.Artifact = &ActionArtifact{Name: name, Body: opt.Action}
	}

	return t, nil
}

func namespaceOf(name string) string {
	i := strings.LastIndex(name, "/")
	if i < 0 {
		return ""
	}
	return name[:i]
}

func autoNamespace(names []string, ns string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if ns != "" && !strings.Contains(n, "/") {
			out[i] = ns + "/" + n
		} else {
			out[i] = n
		}
	}
	return out
}

func singleOption[T any](kind string, options []*T) (*T, error) {
	if len(options) > 1 {
		return nil, construction(kind, "too many arguments", options)
	}
	if len(options) == 1 {
		return options[0], nil
	}
	return nil, nil
}
