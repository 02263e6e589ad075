package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Comcast/faas-compose/platform"
)

func TestDiscoverPropsReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wskprops")
	contents := "# comment\nAPIHOST=example.org\nAUTH=secret\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WSK_CONFIG_FILE", path)

	p, err := platform.DiscoverProps()
	if err != nil {
		t.Fatal(err)
	}
	if p.APIHost != "example.org" || p.Auth != "secret" {
		t.Fatalf("want parsed props, got %#v", p)
	}
}

func TestDiscoverPropsMissingFileIsNonFatal(t *testing.T) {
	t.Setenv("WSK_CONFIG_FILE", "/no/such/path/for/wskprops")
	p, err := platform.DiscoverProps()
	if err != nil {
		t.Fatal(err)
	}
	if p.APIHost != "" || p.Auth != "" {
		t.Fatalf("want zero-value props for a missing file, got %#v", p)
	}
}

func TestOverridePrefersExplicitValues(t *testing.T) {
	file := &platform.Props{APIHost: "from-file", Auth: "file-secret"}
	explicit := &platform.Props{Auth: "explicit-secret"}
	merged := file.Override(explicit)
	if merged.APIHost != "from-file" {
		t.Fatalf("want the file value preserved, got %q", merged.APIHost)
	}
	if merged.Auth != "explicit-secret" {
		t.Fatalf("want the explicit value to win, got %q", merged.Auth)
	}
}
