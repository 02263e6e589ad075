package platform_test

import (
	"path/filepath"
	"testing"

	"github.com/Comcast/faas-compose/compose"
	"github.com/Comcast/faas-compose/platform"
	"github.com/Comcast/faas-compose/platform/boltstore"
)

func TestDeployWritesCompiledBodyAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	store, err := boltstore.Open(filepath.Join(dir, "artifacts.db"), "artifacts")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	action, err := compose.Action("ns/composed", &compose.ActionOptions{
		Sequence: []string{"step1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	task, err := compose.Sequence(action)
	if err != nil {
		t.Fatal(err)
	}
	task.Artifacts = action.Artifacts
	if action.Artifact != nil {
		task.Artifacts = append(task.Artifacts, action.Artifact)
	}
	task.Named("ns/composed-main")

	n, err := platform.Deploy(store, task)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(task.Artifacts)+1 {
		t.Fatalf("want %d deployed artifacts, got %d", len(task.Artifacts)+1, n)
	}

	main, err := store.Get("ns/composed-main")
	if err != nil {
		t.Fatal(err)
	}
	if main == nil {
		t.Fatal("want the main composition's body to be deployed")
	}
}

func TestDeployRejectsUnnamedTask(t *testing.T) {
	dir := t.TempDir()
	store, err := boltstore.Open(filepath.Join(dir, "artifacts.db"), "artifacts")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	task, _ := compose.Sequence()
	if _, err := platform.Deploy(store, task); err == nil {
		t.Fatal("want an error for deploying an unnamed composition")
	}
}
