package compose

import (
	"encoding/json"
	"reflect"
)

// Canonicalize round-trips x through JSON, which is how this package
// verifies that literal values and let declarations are
// deep-cloneable JSON (cf. core/util.go's Canonicalize, used there for
// exactly the same "make sure this is plain JSON" purpose).
func Canonicalize(x interface{}) (interface{}, error) {
	js, err := json.Marshal(x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err := json.Unmarshal(js, &y); err != nil {
		return nil, err
	}
	return y, nil
}

// isCallable reports whether x is a Go function value.  Go functions
// have no retrievable source text, so a constructor that is handed
// one is in the same position as the original source's "native
// function" case: it cannot be serialized and must be rejected.
func isCallable(x interface{}) bool {
	if x == nil {
		return false
	}
	return reflect.ValueOf(x).Kind() == reflect.Func
}

func copyJSONMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyStringSlice(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}
