package boltstore_test

import (
	"path/filepath"
	"testing"

	"github.com/Comcast/faas-compose/platform/boltstore"
)

func open(t *testing.T) *boltstore.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := boltstore.Open(filepath.Join(dir, "artifacts.db"), "artifacts")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDeployThenGet(t *testing.T) {
	s := open(t)
	rec := &boltstore.Record{Name: "ns/action", Body: map[string]interface{}{"x": 1}}
	if err := s.Deploy(rec); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("ns/action")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "ns/action" {
		t.Fatalf("want the deployed record back, got %#v", got)
	}
}

func TestDeployOverwritesStaleBody(t *testing.T) {
	s := open(t)
	first := &boltstore.Record{Name: "ns/action", Body: map[string]interface{}{"v": 1, "stale": true}}
	second := &boltstore.Record{Name: "ns/action", Body: map[string]interface{}{"v": 2}}
	if err := s.Deploy(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Deploy(second); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("ns/action")
	if err != nil {
		t.Fatal(err)
	}
	body := got.Body.(map[string]interface{})
	if _, stale := body["stale"]; stale {
		t.Fatal("delete-then-update should not merge with the stale body")
	}
	if body["v"].(float64) != 2 {
		t.Fatalf("want v=2, got %#v", body)
	}
}

func TestGetMissingIsNil(t *testing.T) {
	s := open(t)
	got, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("want nil for a missing record, got %#v", got)
	}
}

func TestDeleteThenGetIsNil(t *testing.T) {
	s := open(t)
	rec := &boltstore.Record{Name: "ns/action", Body: "x"}
	if err := s.Deploy(rec); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("ns/action"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("ns/action")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("want nil after delete")
	}
}

func TestDeployAllReturnsCount(t *testing.T) {
	s := open(t)
	recs := []*boltstore.Record{
		{Name: "a", Body: 1},
		{Name: "b", Body: 2},
		{Name: "c", Body: 3},
	}
	n, err := s.DeployAll(recs)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("want 3 successful deploys, got %d", n)
	}
	all, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 listed records, got %d", len(all))
	}
}
