package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// Jar is a cookiejar.Jar that also remembers every cookie it has ever
// seen, for callers that want to inspect cookie history across
// action invocations.
type Jar struct {
	*cookiejar.Jar
	Seen []*http.Cookie
}

// NewJar builds a Jar using the public suffix list, so that cookies
// set by one action's endpoint are never leaked to an unrelated
// domain.
func NewJar() (*Jar, error) {
	j, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Jar{Jar: j}, nil
}

func (j *Jar) remember(u *url.URL, cookies []*http.Cookie) {
	j.SetCookies(u, cookies)
	j.Seen = append(j.Seen, cookies...)
}

// HTTPInvoker invokes a named action by POSTing its params as JSON to
// a URL resolved from Endpoints[action], the local-dev stand-in for a
// real FaaS platform's action-invocation endpoint (spec.md §1's
// "hosting platform" collaborator).
type HTTPInvoker struct {
	Endpoints map[string]string
	Jar       *Jar
	Debug     bool
	Client    *http.Client
}

// NewHTTPInvoker builds an HTTPInvoker with its own cookie jar and a
// fresh http.Client bound to that jar.
func NewHTTPInvoker(endpoints map[string]string) (*HTTPInvoker, error) {
	jar, err := NewJar()
	if err != nil {
		return nil, err
	}
	return &HTTPInvoker{
		Endpoints: endpoints,
		Jar:       jar,
		Client:    &http.Client{Jar: jar.Jar},
	}, nil
}

func (h *HTTPInvoker) logf(format string, args ...interface{}) {
	if h.Debug {
		log.Printf("platform.HTTPInvoker."+format, args...)
	}
}

// Invoke runs action by POSTing params, JSON-encoded, to the
// configured endpoint and decoding the response body as JSON. The
// decoded value becomes the conductor's resumed params (spec.md
// §6.2's continuation contract).
func (h *HTTPInvoker) Invoke(ctx context.Context, action string, params interface{}) (interface{}, error) {
	endpoint, ok := h.Endpoints[action]
	if !ok {
		return nil, fmt.Errorf("no endpoint registered for action %q", action)
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	h.logf("Invoke %s %s", action, endpoint)
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if h.Jar != nil {
		if u, err := url.Parse(endpoint); err == nil {
			h.Jar.remember(u, resp.Cookies())
		}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("action %q returned status %s: %s", action, resp.Status, respBody)
	}

	var result interface{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}
