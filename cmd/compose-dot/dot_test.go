package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/fsm"
)

func TestDotWritesDigraph(t *testing.T) {
	test, _ := compose.Literal(map[string]interface{}{"value": true})
	yes, _ := compose.Literal("yes")
	no, _ := compose.Literal("no")
	task, err := compose.If(test, yes, no)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := fsm.Compile(task)
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(t.TempDir(), "g.dot")
	out, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}

	if err := Dot(prog, out); err != nil {
		t.Fatal(err)
	}

	bs, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	dot := string(bs)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("want a digraph header, got:\n%s", dot)
	}
	if !strings.Contains(dot, "label=\"then\"") || !strings.Contains(dot, "label=\"else\"") {
		t.Fatalf("want then/else edges for the choice state, got:\n%s", dot)
	}
}
