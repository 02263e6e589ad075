package platform

import (
	"bufio"
	"os"
	"strings"
)

// Props holds FaaS credentials: an API host and an auth token
// (spec.md §6.4).  Deploy does not read them.
type Props struct {
	APIHost string
	Auth    string
}

// DiscoverProps reads APIHOST and AUTH lines from a key=value file
// named by the WSK_CONFIG_FILE environment variable, defaulting to
// ~/.wskprops. A missing file is non-fatal: DiscoverProps returns a
// zero Props and a nil error, letting explicit constructor options
// override file values (spec.md §6.4).
func DiscoverProps() (*Props, error) {
	path := os.Getenv("WSK_CONFIG_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Props{}, nil
		}
		path = home + "/.wskprops"
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Props{}, nil
		}
		return nil, err
	}
	defer f.Close()

	p := &Props{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch key {
		case "APIHOST":
			p.APIHost = value
		case "AUTH":
			p.Auth = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// Override returns a copy of p with any non-empty field in o
// overriding p's, implementing the "explicit constructor options
// override file values" rule of spec.md §6.4.
func (p *Props) Override(o *Props) *Props {
	out := *p
	if o == nil {
		return &out
	}
	if o.APIHost != "" {
		out.APIHost = o.APIHost
	}
	if o.Auth != "" {
		out.Auth = o.Auth
	}
	return &out
}
