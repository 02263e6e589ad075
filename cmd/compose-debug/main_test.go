package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/specfile"

	_ "github.com/Comcast/faas-compose/interpreters/goja"
)

func writeSpec(t *testing.T) string {
	t.Helper()
	lit, err := compose.Literal(map[string]interface{}{"x": 1})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "spec.yaml")
	if err := specfile.Save(path, lit); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReplRunPrintsOutcome(t *testing.T) {
	d := &Debugger{specFile: writeSpec(t)}
	if err := d.reload(); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("run\n")
	out := &bytes.Buffer{}
	if err := d.repl(in, out); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), `"params"`) {
		t.Fatalf("want a rendered success outcome, got:\n%s", out.String())
	}
}

func TestReplPrintWithoutRunSaysSo(t *testing.T) {
	d := &Debugger{specFile: writeSpec(t)}
	if err := d.reload(); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("print\n")
	out := &bytes.Buffer{}
	if err := d.repl(in, out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "no outcome yet") {
		t.Fatalf("want a no-outcome message, got:\n%s", out.String())
	}
}

func TestReplReloadRecompiles(t *testing.T) {
	d := &Debugger{specFile: writeSpec(t)}
	if err := d.reload(); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("reload\n")
	out := &bytes.Buffer{}
	if err := d.repl(in, out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "reloaded") {
		t.Fatalf("want a reload confirmation, got:\n%s", out.String())
	}
}
