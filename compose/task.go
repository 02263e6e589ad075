package compose

// Kind tags the variant a Task represents.
type Kind string

const (
	KindAction   Kind = "action"
	KindFunction Kind = "function"
	KindLiteral  Kind = "literal"
	KindSequence Kind = "sequence"
	KindIf       Kind = "if"
	KindWhile    Kind = "while"
	KindTry      Kind = "try"
	KindFinally  Kind = "finally"
	KindLet      Kind = "let"
	KindRetain   Kind = "retain"
)

// Exec names the interpreter that should run Code and carries the
// code (source text) to run.  A bare string given to Function is
// wrapped in an Exec with Kind "goja:default".
type Exec struct {
	Kind string `json:"kind" yaml:",omitempty"`
	Code string `json:"code" yaml:",omitempty"`
}

// ActionArtifact is a deployable action body that was attached to an
// `action` node's options (via the Sequence, Filename, or Action
// options).  Nested Tasks hoist their ActionArtifacts into the
// parent's Artifacts list during normalization so that a single
// top-level Task carries every artifact that Deploy must push.
type ActionArtifact struct {
	// Name is the (possibly auto-namespaced) action name this
	// artifact deploys as.
	Name string `json:"name" yaml:",omitempty"`

	// Sequence, if non-empty, makes this a native-sequence
	// artifact: an ordered list of action names to run in
	// sequence on the platform side.
	Sequence []string `json:"sequence,omitempty" yaml:",omitempty"`

	// Body is the artifact's inline code or object, taken from
	// the Filename or Action option.
	Body interface{} `json:"body,omitempty" yaml:",omitempty"`
}

// Task is a single, normalized AST node.  Only the fields relevant to
// Kind are meaningful; the rest are zero. Every field carries both
// json and yaml tags so a Task round-trips through specfile's YAML
// loader the same way it does through JSON (mirroring core.Spec's
// dual-tagged fields).
type Task struct {
	Kind Kind `json:"kind" yaml:",omitempty"`

	// Name/Version identify a Task that has been Named for
	// deployment.  Cf. §6.3.
	Name    string `json:"name,omitempty" yaml:",omitempty"`
	Version string `json:"version,omitempty" yaml:",omitempty"`

	// Doc is a recognized-but-non-semantic option: markdown
	// documentation for this node, consumed only by package docs.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// --- action ---
	ActionName string          `json:"actionName,omitempty" yaml:",omitempty"`
	Artifact   *ActionArtifact `json:"artifact,omitempty" yaml:",omitempty"` // non-nil if this action has an inline/native-sequence body

	// --- function ---
	Exec *Exec `json:"exec,omitempty" yaml:",omitempty"`

	// --- literal ---
	Value interface{} `json:"value,omitempty" yaml:",omitempty"`

	// --- sequence ---
	Children []*Task `json:"children,omitempty" yaml:",omitempty"`

	// --- if / while ---
	Test       *Task `json:"test,omitempty" yaml:",omitempty"`
	Consequent *Task `json:"consequent,omitempty" yaml:",omitempty"` // if only
	Alternate  *Task `json:"alternate,omitempty" yaml:",omitempty"`  // if only
	Body       *Task `json:"body,omitempty" yaml:",omitempty"`       // while only
	NoSave     bool  `json:"noSave,omitempty" yaml:",omitempty"`

	// --- try / finally ---
	Handler   *Task `json:"handler,omitempty" yaml:",omitempty"`   // try only
	Finalizer *Task `json:"finalizer,omitempty" yaml:",omitempty"` // finally only

	// --- let ---
	Declarations map[string]interface{} `json:"declarations,omitempty" yaml:",omitempty"`

	// --- retain ---
	Field  string `json:"field,omitempty" yaml:",omitempty"`
	Filter *Task  `json:"filter,omitempty" yaml:",omitempty"` // a function Task
	Catch  bool   `json:"catch,omitempty" yaml:",omitempty"`

	// Artifacts gathers every ActionArtifact attached anywhere in
	// this Task's subtree (hoisted during construction).
	Artifacts []*ActionArtifact `json:"artifacts,omitempty" yaml:",omitempty"`
}

// Copy makes a deep copy of the Task, mirroring the teacher's
// Spec.Copy/Node.Copy/Branches.Copy idiom of copying every owned
// reference so that mutation of a derived Task never aliases the
// original.
func (t *Task) Copy() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Children = copyTasks(t.Children)
	c.Test = t.Test.Copy()
	c.Consequent = t.Consequent.Copy()
	c.Alternate = t.Alternate.Copy()
	c.Body = t.Body.Copy()
	c.Handler = t.Handler.Copy()
	c.Finalizer = t.Finalizer.Copy()
	c.Filter = t.Filter.Copy()
	c.Declarations = copyJSONMap(t.Declarations)
	c.Artifacts = copyArtifacts(t.Artifacts)
	if t.Value != nil {
		if cloned, err := Canonicalize(t.Value); err == nil {
			c.Value = cloned
		}
	}
	if t.Exec != nil {
		e := *t.Exec
		c.Exec = &e
	}
	if t.Artifact != nil {
		a := *t.Artifact
		a.Sequence = append([]string(nil), t.Artifact.Sequence...)
		c.Artifact = &a
	}
	return &c
}

func copyTasks(ts []*Task) []*Task {
	if ts == nil {
		return nil
	}
	cs := make([]*Task, len(ts))
	for i, t := range ts {
		cs[i] = t.Copy()
	}
	return cs
}

func copyArtifacts(as []*ActionArtifact) []*ActionArtifact {
	if as == nil {
		return nil
	}
	cs := make([]*ActionArtifact, len(as))
	for i, a := range as {
		cc := *a
		cc.Sequence = append([]string(nil), a.Sequence...)
		cs[i] = &cc
	}
	return cs
}

// Named attaches a deployable identity to this Task and returns the
// same Task for chaining, mirroring the teacher's fluent Spec-naming
// conventions.
func (t *Task) Named(name string) *Task {
	t.Name = name
	return t
}

// hoist appends a child's hoisted artifacts (and, if the child itself
// is an action with an artifact, that artifact) to t.Artifacts.
func (t *Task) hoist(child *Task) {
	if child == nil {
		return
	}
	if child.Artifact != nil {
		t.Artifacts = append(t.Artifacts, child.Artifact)
	}
	t.Artifacts = append(t.Artifacts, child.Artifacts...)
}
