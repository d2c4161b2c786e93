package typematch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput is returned when an Inspector cannot decode its input.
var ErrInvalidInput = errors.New("invalid input")

// Inspector decodes a raw document into call arguments for CallRaw.
// Different inspectors handle different formats (JSON, YAML, etc.).
type Inspector interface {
	Inspect(raw []byte) ([]any, error)
}

// JSONInspector returns an Inspector that uses gjson to decode JSON.
//
// Decoded values name as "Null", "Boolean", "Number", "String", "Array"
// ([]any) and "Object" (map[string]any). Integer literals decode as int64,
// or uint64 above the int64 range, so they keep every digit. Other numbers
// decode as float64.
func JSONInspector() Inspector {
	return jsonInspector{}
}

type jsonInspector struct{}

func (jsonInspector) Inspect(raw []byte) ([]any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidInput)
	}

	r := gjson.ParseBytes(raw)
	if !r.IsArray() {
		return []any{jsonValue(r)}, nil
	}

	elems := r.Array()
	args := make([]any, len(elems))
	for i, e := range elems {
		args[i] = jsonValue(e)
	}
	return args, nil
}

// jsonValue is gjson.Result.Value with exact integers.
func jsonValue(r gjson.Result) any {
	switch {
	case r.IsArray():
		elems := r.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = jsonValue(e)
		}
		return out
	case r.IsObject():
		out := make(map[string]any)
		r.ForEach(func(key, value gjson.Result) bool {
			out[key.String()] = jsonValue(value)
			return true
		})
		return out
	case r.Type == gjson.Number && !strings.ContainsAny(r.Raw, ".eE"):
		lit := strings.TrimSpace(r.Raw)
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return n
		}
		return r.Float()
	default:
		return r.Value()
	}
}

// YAMLInspector returns an Inspector that decodes a single YAML document.
//
// Integers decode as int and floats as float64, both named "Number". Empty
// input is rejected with ErrInvalidInput, as JSONInspector does; an explicit
// "~" or "null" document is one Null argument.
func YAMLInspector() Inspector {
	return yamlInspector{}
}

type yamlInspector struct{}

func (yamlInspector) Inspect(raw []byte) ([]any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if node.Kind == 0 {
		return nil, fmt.Errorf("%w: empty YAML document", ErrInvalidInput)
	}

	var doc any
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if elems, ok := doc.([]any); ok {
		return elems, nil
	}
	return []any{doc}, nil
}
