// Package docs renders a composition's per-node Doc fields (markdown)
// to HTML, grounded on tools/spec-html.go's RenderSpecHTML/
// RenderSpecPage: walk the tree, run each node's doc string through
// blackfriday, and lay the result out as one row per node.
package docs

import (
	"encoding/json"
	"fmt"
	"io"

	md "github.com/russross/blackfriday/v2"

	"github.com/Comcast/faas-compose/compose"
)

// RenderTaskHTML writes an HTML table of task and every node in its
// subtree, rendering each node's Doc field as markdown.
func RenderTaskHTML(task *compose.Task, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	if task.Doc != "" {
		f(`<div class="taskDoc doc">%s</div>`, md.Run([]byte(task.Doc)))
	}

	f(`<div class="nodes"><table>`)
	renderNode(task, "root", f)
	f(`</table></div>`)
	return nil
}

func renderNode(t *compose.Task, path string, f func(string, ...interface{})) {
	if t == nil {
		return
	}

	f(`<tr class="node"><td><span id="%s" class="nodeName">%s</span></td><td>`, path, t.Kind)
	if t.Name != "" {
		f(`<div class="nodeName">%s</div>`, t.Name)
	}
	if t.Doc != "" {
		f(`<div class="nodeDoc doc">%s</div>`, md.Run([]byte(t.Doc)))
	}
	if t.Exec != nil {
		f(`<div class="code"><pre>%s</pre></div>`, t.Exec.Code)
	}
	f(`</td></tr>`)

	for i, c := range t.Children {
		renderNode(c, fmt.Sprintf("%s.%d", path, i), f)
	}
	renderNode(t.Test, path+".test", f)
	renderNode(t.Consequent, path+".then", f)
	renderNode(t.Alternate, path+".else", f)
	renderNode(t.Body, path+".body", f)
	renderNode(t.Handler, path+".catch", f)
	renderNode(t.Finalizer, path+".finally", f)
	renderNode(t.Filter, path+".filter", f)
}

// RenderTaskPage wraps RenderTaskHTML in a minimal standalone HTML
// page, embedding the composition's JSON AST for client-side tooling,
// mirroring RenderSpecPage's `thisSpec` embed.
func RenderTaskPage(task *compose.Task, out io.Writer, cssFiles []string) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/compose-docs.css"}
	}

	js, err := json.Marshal(task)
	if err != nil {
		return err
	}

	title := task.Name
	if title == "" {
		title = "composition"
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
  <script>
  var thisTask = %s;
  </script>
`, title, js)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, title)

	if err := RenderTaskHTML(task, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)
	return nil
}
