package compose_test

import (
	"testing"

	"github.com/Comcast/faas-compose/compose"
)

func TestTaskOfCoercions(t *testing.T) {
	empty, err := compose.TaskOf(nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Kind != compose.KindSequence || len(empty.Children) != 0 {
		t.Fatalf("nil should coerce to an empty sequence, got %#v", empty)
	}

	act, err := compose.TaskOf("doThing")
	if err != nil {
		t.Fatal(err)
	}
	if act.Kind != compose.KindAction || act.ActionName != "doThing" {
		t.Fatalf("string should coerce to an action, got %#v", act)
	}

	if _, err := compose.TaskOf(func() {}); err == nil {
		t.Fatal("a native Go function should be rejected")
	}
}

func TestSequenceFlattensNested(t *testing.T) {
	a, _ := compose.Literal("a")
	inner, err := compose.Sequence(a, a)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := compose.Literal("b")
	outer, err := compose.Sequence(inner, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(outer.Children) != 3 {
		t.Fatalf("want 3 flattened children, got %d: %#v", len(outer.Children), outer.Children)
	}
}

func TestSequenceOfOneCollapses(t *testing.T) {
	a, _ := compose.Literal("a")
	seq, err := compose.Sequence(a)
	if err != nil {
		t.Fatal(err)
	}
	if seq.Kind != compose.KindLiteral {
		t.Fatalf("a one-element sequence should collapse to its element, got kind %v", seq.Kind)
	}
}

func TestEmptySequence(t *testing.T) {
	seq, err := compose.Sequence()
	if err != nil {
		t.Fatal(err)
	}
	if seq.Kind != compose.KindSequence || len(seq.Children) != 0 {
		t.Fatalf("want an empty sequence, got %#v", seq)
	}
}

func TestLiteralRejectsCallable(t *testing.T) {
	if _, err := compose.Literal(func() {}); err == nil {
		t.Fatal("want an error for a callable literal value")
	}
}

func TestLiteralDefaultsNilToEmptyObject(t *testing.T) {
	lit, err := compose.Literal(nil)
	if err != nil {
		t.Fatal(err)
	}
	m, is := lit.Value.(map[string]interface{})
	if !is || len(m) != 0 {
		t.Fatalf("want an empty object, got %#v", lit.Value)
	}
}

func TestFunctionRejectsNativeCodeMarker(t *testing.T) {
	if _, err := compose.Function("function() { [native code] }"); err == nil {
		t.Fatal("want native code to be rejected")
	}
}

func TestFunctionRejectsGoFunc(t *testing.T) {
	if _, err := compose.Function(func() {}); err == nil {
		t.Fatal("want a Go function value to be rejected")
	}
}

func TestActionAutoNamespacesSequence(t *testing.T) {
	task, err := compose.Action("ns/composed", &compose.ActionOptions{
		Sequence: []string{"step1", "other/step2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if task.Artifact == nil {
		t.Fatal("want an artifact")
	}
	want := []string{"ns/step1", "other/step2"}
	for i, w := range want {
		if task.Artifact.Sequence[i] != w {
			t.Fatalf("step %d: want %q, got %q", i, w, task.Artifact.Sequence[i])
		}
	}
}

func TestIfArityRejectsExtraOptions(t *testing.T) {
	test, _ := compose.Literal(true)
	yes, _ := compose.Literal("yes")
	no, _ := compose.Literal("no")
	_, err := compose.If(test, yes, no, &compose.IfOptions{}, &compose.IfOptions{})
	if err == nil {
		t.Fatal("want an error for too many option arguments")
	}
}

func TestLetRejectsNonJSONDeclarations(t *testing.T) {
	_, err := compose.Let(map[string]interface{}{"f": func() {}})
	if err == nil {
		t.Fatal("want an error for a non-JSON declaration value")
	}
}

func TestRetainMutuallyExclusiveOptions(t *testing.T) {
	body, _ := compose.Literal("x")
	_, err := compose.Retain(body, &compose.RetainOptions{Field: "a", Catch: true})
	if err == nil {
		t.Fatal("want an error when field and catch are both set")
	}
}

func TestTaskCopyIsDeep(t *testing.T) {
	lit, _ := compose.Literal(map[string]interface{}{"x": 1})
	seq, err := compose.Sequence(lit, lit)
	if err != nil {
		t.Fatal(err)
	}
	cp := seq.Copy()
	cp.Children[0].Value.(map[string]interface{})["x"] = 99
	if seq.Children[0].Value.(map[string]interface{})["x"] != float64(1) {
		t.Fatal("Copy should not alias the original's Value maps")
	}
}
