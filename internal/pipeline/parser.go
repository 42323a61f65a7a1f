package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step is one named, parameterized entry of a pipeline document.
type Step struct {
	Name   string
	Params map[string]any
}

// Description is a parsed, shape-validated pipeline. Immutable once built;
// scoped to a single run.
type Description struct {
	InputPath string
	Steps     []Step
}

// Parse decodes a pipeline document, trying the YAML superset first and
// falling back to strict JSON. Both failing yields a ValidationError
// carrying the underlying parse error.
func Parse(raw string) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(raw), &doc); err == nil && doc != nil {
		return doc, nil
	}
	doc = nil
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid pipeline configuration: %v", err)}
	}
	return doc, nil
}

// Validate checks the structural invariants of a parsed document and builds
// the Description. Transformation names are not checked against the
// registry here; unknown names surface at execution time.
func Validate(doc map[string]any) (Description, error) {
	rawSteps, ok := doc["transformations"]
	if !ok {
		return Description{}, &ValidationError{Reason: "pipeline must contain 'transformations' key"}
	}
	list, ok := rawSteps.([]any)
	if !ok {
		return Description{}, &ValidationError{Reason: "'transformations' must be a list"}
	}
	if len(list) == 0 {
		return Description{}, &ValidationError{Reason: "'transformations' must not be empty"}
	}

	steps := make([]Step, 0, len(list))
	for _, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return Description{}, &ValidationError{Reason: "each transformation step must be a mapping"}
		}
		rawName, ok := m["name"]
		if !ok {
			return Description{}, &ValidationError{Reason: "each transformation step must have a 'name'"}
		}
		name, ok := rawName.(string)
		if !ok || name == "" {
			return Description{}, &ValidationError{Reason: "transformation step 'name' must be a non-empty string"}
		}
		rawParams, ok := m["params"]
		if !ok {
			return Description{}, &ValidationError{Reason: "each transformation step must have 'params'"}
		}
		params, ok := rawParams.(map[string]any)
		if !ok {
			return Description{}, &ValidationError{Reason: "'params' must be a mapping"}
		}
		steps = append(steps, Step{Name: name, Params: params})
	}

	inputPath, _ := doc["input_path"].(string)
	if strings.TrimSpace(inputPath) == "" {
		return Description{}, &ValidationError{Reason: "pipeline must contain a non-empty 'input_path'"}
	}
	return Description{InputPath: inputPath, Steps: steps}, nil
}
