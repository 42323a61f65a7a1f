package transform

import (
	"fmt"
	"sort"
	"strings"

	"tabular/internal/pipeline"
)

// requireParams collects every absent name into a single ParameterError,
// sorted for a stable message.
func requireParams(params map[string]any, names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := params[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &pipeline.ParameterError{Reason: "missing required parameters: " + strings.Join(missing, ", ")}
}

// stringList reads a parameter that must be a list of strings. YAML and JSON
// decoding produce []any; a native []string is accepted for direct callers.
func stringList(params map[string]any, name string) ([]string, error) {
	switch v := params[name].(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, listTypeErr(name)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, listTypeErr(name)
	}
}

func listTypeErr(name string) error {
	return &pipeline.ParameterError{Reason: fmt.Sprintf("parameter %q must be a list of strings", name)}
}

// stringMap reads a parameter that must map strings to strings.
func stringMap(params map[string]any, name string) (map[string]string, error) {
	switch v := params[name].(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, mapTypeErr(name)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, mapTypeErr(name)
	}
}

func mapTypeErr(name string) error {
	return &pipeline.ParameterError{Reason: fmt.Sprintf("parameter %q must be a mapping of strings to strings", name)}
}
