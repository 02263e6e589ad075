package specfile_test

import (
	"path/filepath"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/specfile"
)

func TestRenderThenParseRoundTrips(t *testing.T) {
	lit, err := compose.Literal(map[string]interface{}{"x": 1})
	if err != nil {
		t.Fatal(err)
	}
	fn, err := compose.Function("p=>p")
	if err != nil {
		t.Fatal(err)
	}
	task, err := compose.Sequence(lit, fn)
	if err != nil {
		t.Fatal(err)
	}
	task.Named("ns/roundtrip")

	bs, err := specfile.Render(task)
	if err != nil {
		t.Fatal(err)
	}

	back, err := specfile.Parse(bs)
	if err != nil {
		t.Fatal(err)
	}

	if back.Name != "ns/roundtrip" || back.Kind != compose.KindSequence {
		t.Fatalf("want the name and kind preserved, got %#v", back)
	}
	if len(back.Children) != 2 {
		t.Fatalf("want 2 children preserved, got %d", len(back.Children))
	}
	if back.Children[1].Exec == nil || back.Children[1].Exec.Code != "p=>p" {
		t.Fatalf("want the function's exec preserved, got %#v", back.Children[1].Exec)
	}
}

func TestSaveThenLoad(t *testing.T) {
	task, err := compose.Literal("hello")
	if err != nil {
		t.Fatal(err)
	}
	task.Named("ns/hello")

	path := filepath.Join(t.TempDir(), "hello.yaml")
	if err := specfile.Save(path, task); err != nil {
		t.Fatal(err)
	}

	back, err := specfile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Value != "hello" {
		t.Fatalf("want the literal value preserved, got %#v", back.Value)
	}
}
