// Package specfile loads and saves composition artifacts as YAML,
// mirroring cmd/spectool's yamltojson/jsontoyaml round trip of the
// teacher's core.Spec: a *compose.Task (or a compiled platform.Body)
// is just a dual json/yaml-tagged struct, so the jsccast/yaml fork
// unmarshals and marshals it the same way it unmarshals/marshals
// core.Spec, with no separate builder pass.
package specfile

import (
	"io/ioutil"
	"os"

	"github.com/jsccast/yaml"

	"github.com/Comcast/faas-compose/compose"
)

// Load reads a YAML-encoded *compose.Task from filename.
func Load(filename string) (*compose.Task, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(bs)
}

// Parse decodes a YAML-encoded *compose.Task from bs.
func Parse(bs []byte) (*compose.Task, error) {
	var task compose.Task
	if err := yaml.Unmarshal(bs, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Save YAML-encodes task and writes it to filename.
func Save(filename string, task *compose.Task) error {
	bs, err := Render(task)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bs, 0644)
}

// Render YAML-encodes task.
func Render(task *compose.Task) ([]byte, error) {
	return yaml.Marshal(task)
}
